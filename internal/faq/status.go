package faq

import (
	"time"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/searcher"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// Status describes the active snapshot for diagnostics
type Status struct {
	Backend         types.BackendKind  `json:"backend"`
	Entries         int                `json:"entries"`
	RoomTypes       []string           `json:"room_types"`
	SampleQuestions []string           `json:"sample_questions"`
	DBVersion       string             `json:"db_version,omitempty"`
	Source          string             `json:"source,omitempty"`
	LoadedAt        time.Time          `json:"loaded_at"`
	BuildDuration   string             `json:"build_duration"`
	Skipped         []searcher.Skipped `json:"skipped_backends"`
	Reloading       bool               `json:"reloading"`
}

// Status reports on the active snapshot, or ErrIndexNotBuilt
func (e *Engine) Status() (*Status, error) {
	snap := e.current.Load()
	if snap == nil {
		return nil, types.ErrIndexNotBuilt
	}

	stats := snap.index.Stats()

	n := snap.index.Len()
	if n > sampleQuestions {
		n = sampleQuestions
	}
	samples := make([]string, n)
	for i := 0; i < n; i++ {
		samples[i] = snap.index.Entry(i).Question
	}

	skipped := stats.Skipped
	if skipped == nil {
		skipped = []searcher.Skipped{}
	}

	return &Status{
		Backend:         stats.Backend,
		Entries:         stats.Entries,
		RoomTypes:       append([]string{}, snap.roomTypes...),
		SampleQuestions: samples,
		DBVersion:       snap.dbVersion,
		Source:          snap.source,
		LoadedAt:        snap.loadedAt,
		BuildDuration:   stats.BuildDuration.String(),
		Skipped:         skipped,
		Reloading:       e.reload.Held(),
	}, nil
}
