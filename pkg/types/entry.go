package types

import "strings"

// EntrySource identifies the knowledge section an entry was synthesized from
type EntrySource string

const (
	SourceFAQ     EntrySource = "faq"
	SourcePolicy  EntrySource = "policy"
	SourceRoom    EntrySource = "room"
	SourceMenu    EntrySource = "menu"
	SourceAmenity EntrySource = "amenity"
)

// Entry is one matchable question/answer unit.
// Entries are treated as immutable once flattened.
type Entry struct {
	Question   string
	Answer     string
	Alternates []string
	Source     EntrySource
}

// Document returns the searchable text: the question followed by all alternates
func (e Entry) Document() string {
	if len(e.Alternates) == 0 {
		return e.Question
	}
	return e.Question + " " + strings.Join(e.Alternates, " ")
}

// Phrasings returns the question and each alternate as separate strings
func (e Entry) Phrasings() []string {
	out := make([]string, 0, 1+len(e.Alternates))
	out = append(out, e.Question)
	out = append(out, e.Alternates...)
	return out
}

// Clone returns a copy that shares no slices with e
func (e Entry) Clone() Entry {
	c := e
	if e.Alternates != nil {
		c.Alternates = append([]string(nil), e.Alternates...)
	}
	return c
}

// RankedHit is an entry position with its normalized score in [0, 1]
type RankedHit struct {
	Index int
	Score float64
}
