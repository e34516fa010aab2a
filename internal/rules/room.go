package rules

import (
	"fmt"
	"strings"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/knowledge"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/textnorm"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// Rule names reported in AnswerResult.Rule
const (
	RuleRoomTypes    = "room_types"
	RuleSpecificRoom = "specific_room"
)

// SizeKeywords is the fixed room-size vocabulary, in matching order
var SizeKeywords = []string{"single", "double", "twin", "queen", "king"}

// serviceWords follow "room" in phrases that are not about room types
var serviceWords = map[string]bool{
	"service": true,
	"key":     true,
	"card":    true,
}

type room struct {
	name   string
	tokens map[string]struct{}
	answer string
}

// RoomRouter routes room questions using the known room records
type RoomRouter struct {
	rooms []room
}

// NewRoomRouter builds a router from room records. Records without a type are ignored.
func NewRoomRouter(records []knowledge.Room) *RoomRouter {
	r := &RoomRouter{}
	seen := make(map[string]bool)
	for _, rec := range records {
		name := strings.TrimSpace(rec.RoomType)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		r.rooms = append(r.rooms, room{
			name:   name,
			tokens: textnorm.TokenSet(name),
			answer: knowledge.RoomAnswer(rec),
		})
	}
	return r
}

// RoomTypes returns the known room type names in document order
func (r *RoomRouter) RoomTypes() []string {
	names := make([]string, len(r.rooms))
	for i, rm := range r.rooms {
		names[i] = rm.name
	}
	return names
}

// Route returns a rule answer, or false when no rule applies.
// backend is reported on the result for diagnostics only.
func (r *RoomRouter) Route(query string, backend types.BackendKind) (*types.AnswerResult, bool) {
	if r == nil || len(r.rooms) == 0 {
		return nil, false
	}

	tokens := textnorm.Tokenize(query)
	if len(tokens) == 0 {
		return nil, false
	}

	if keyword, ok := sizeKeyword(tokens); ok {
		return r.specificRoom(keyword, backend), true
	}

	if mentionsRooms(tokens) {
		return types.RuleMatch(backend, RuleRoomTypes, knowledge.RoomTypesQuestion,
			knowledge.RoomTypesAnswer(r.RoomTypes())), true
	}

	return nil, false
}

func (r *RoomRouter) specificRoom(keyword string, backend types.BackendKind) *types.AnswerResult {
	for _, rm := range r.rooms {
		if _, ok := rm.tokens[keyword]; ok {
			return types.RuleMatch(backend, RuleSpecificRoom, "tell me about the "+rm.name, rm.answer)
		}
	}

	answer := fmt.Sprintf("Sorry, we don't have a %s room. Available room types: %s.",
		keyword, strings.Join(r.RoomTypes(), ", "))
	return types.RuleMatch(backend, RuleSpecificRoom, keyword+" room", answer)
}

// sizeKeyword returns the first size keyword appearing in the query
func sizeKeyword(tokens []string) (string, bool) {
	for _, tok := range tokens {
		for _, kw := range SizeKeywords {
			if tok == kw {
				return kw, true
			}
		}
	}
	return "", false
}

// mentionsRooms reports a "room"/"rooms" token not used as in "room service"
func mentionsRooms(tokens []string) bool {
	for i, tok := range tokens {
		if tok != "room" && tok != "rooms" {
			continue
		}
		if i+1 < len(tokens) && serviceWords[tokens[i+1]] {
			continue
		}
		return true
	}
	return false
}
