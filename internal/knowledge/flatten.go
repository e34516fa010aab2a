package knowledge

import (
	"fmt"
	"strings"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/textnorm"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

const (
	// MaxRoomFeatures caps the feature list quoted in a room answer
	MaxRoomFeatures = 6

	// RoomTypesQuestion is the canonical question of the aggregate room entry
	RoomTypesQuestion = "what room types do you have"
)

// recognizedMeals are the menu sections that produce meal entries
var recognizedMeals = map[string]bool{
	"breakfast": true,
	"brunch":    true,
	"lunch":     true,
	"dinner":    true,
	"snacks":    true,
	"desserts":  true,
	"drinks":    true,
}

// Flatten converts a document into de-duplicated entries and the known room types.
// A nil document yields no entries.
func Flatten(doc *Document) ([]types.Entry, []string) {
	if doc == nil {
		return []types.Entry{}, []string{}
	}

	var entries []types.Entry
	entries = append(entries, faqEntries(doc.FAQ)...)
	entries = append(entries, policyEntries(doc.Policies)...)

	roomEntries, roomTypes := roomEntries(doc.Rooms)
	entries = append(entries, roomEntries...)
	entries = append(entries, amenityEntries(doc.Amenities)...)
	entries = append(entries, menuEntries(doc.Menus)...)

	return dedupe(entries), roomTypes
}

// RoomTypesAnswer lists the known room types for the aggregate entry and the room rule
func RoomTypesAnswer(roomTypes []string) string {
	return fmt.Sprintf("We offer the following room types: %s.", strings.Join(roomTypes, ", "))
}

// RoomAnswer describes one room: description, capped features and nightly price
func RoomAnswer(r Room) string {
	var parts []string

	if desc := strings.TrimSpace(r.Description); desc != "" {
		parts = append(parts, desc)
	}

	features := cleanStrings(r.Features)
	if len(features) > MaxRoomFeatures {
		features = features[:MaxRoomFeatures]
	}
	if len(features) > 0 {
		parts = append(parts, "Features: "+strings.Join(features, ", ")+".")
	}

	if !r.PricePerNight.IsZero() {
		parts = append(parts, fmt.Sprintf("Price: $%s per night.", dollars(r.PricePerNight)))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("The %s room is available.", strings.TrimSpace(r.RoomType))
	}
	return strings.Join(parts, " ")
}

func faqEntries(items []FAQItem) []types.Entry {
	var out []types.Entry
	for _, item := range items {
		q := strings.TrimSpace(item.Question)
		a := strings.TrimSpace(item.Answer)
		if q == "" || a == "" {
			continue
		}

		alts := cleanStrings(item.Alternates)
		alts = append(alts, cleanStrings(item.Alts)...)

		out = append(out, types.Entry{
			Question:   q,
			Answer:     a,
			Alternates: alts,
			Source:     types.SourceFAQ,
		})
	}
	return out
}

func policyEntries(policies Policies) []types.Entry {
	var out []types.Entry
	for _, p := range policies {
		key := strings.TrimSpace(strings.ReplaceAll(p.Key, "_", " "))
		value := strings.TrimSpace(p.Value)
		if key == "" || value == "" {
			continue
		}

		out = append(out, types.Entry{
			Question:   key,
			Answer:     value,
			Alternates: []string{"what is " + key, key + "?"},
			Source:     types.SourcePolicy,
		})
	}
	return out
}

func roomEntries(rooms []Room) ([]types.Entry, []string) {
	roomTypes := []string{}
	var perRoom []types.Entry
	seen := make(map[string]bool)

	for _, r := range rooms {
		rt := strings.TrimSpace(r.RoomType)
		if rt == "" {
			continue
		}
		if !seen[rt] {
			seen[rt] = true
			roomTypes = append(roomTypes, rt)
		}

		perRoom = append(perRoom, types.Entry{
			Question: "tell me about the " + rt,
			Answer:   RoomAnswer(r),
			Alternates: []string{
				"do you have " + rt,
				rt + " details",
				rt + " price",
				rt + " room",
			},
			Source: types.SourceRoom,
		})
	}

	if len(roomTypes) == 0 {
		return nil, roomTypes
	}

	aggregate := types.Entry{
		Question:   RoomTypesQuestion,
		Answer:     RoomTypesAnswer(roomTypes),
		Alternates: []string{"room types", "what rooms are available", "types of rooms"},
		Source:     types.SourceRoom,
	}
	return append([]types.Entry{aggregate}, perRoom...), roomTypes
}

func amenityEntries(amenities []Amenity) []types.Entry {
	var out []types.Entry
	for _, a := range amenities {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}

		if desc := strings.TrimSpace(a.Description); desc != "" {
			out = append(out, types.Entry{
				Question:   "tell me about " + name,
				Answer:     desc,
				Alternates: []string{name, "what is " + name},
				Source:     types.SourceAmenity,
			})
		}

		if timings := a.Rules.Timings.String(); timings != "" {
			out = append(out, types.Entry{
				Question:   name + " timings",
				Answer:     timings,
				Alternates: []string{"when is " + name + " open", name + " hours"},
				Source:     types.SourceAmenity,
			})
		}
	}
	return out
}

func menuEntries(menus Menus) []types.Entry {
	var mealEntries, itemEntries []types.Entry
	var served []string

	for _, meal := range menus {
		slot := textnorm.Normalize(meal.Name)
		if !recognizedMeals[slot] {
			continue
		}

		var listed []string
		for _, item := range meal.Items {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				continue
			}
			if !item.Price.IsZero() {
				listed = append(listed, fmt.Sprintf("%s ($%s)", name, dollars(item.Price)))
			}
			if desc := strings.TrimSpace(item.Description); desc != "" {
				itemEntries = append(itemEntries, types.Entry{
					Question:   "what is in the " + name,
					Answer:     desc,
					Alternates: []string{name},
					Source:     types.SourceMenu,
				})
			}
		}

		if len(listed) == 0 {
			continue
		}

		title := titleCase(slot)
		served = append(served, title)
		mealEntries = append(mealEntries, types.Entry{
			Question: "what is the " + slot + " menu",
			Answer:   fmt.Sprintf("%s menu: %s.", title, strings.Join(listed, ", ")),
			Alternates: []string{
				slot + " menu",
				"what is in the " + slot + " menu",
				"what do you serve for " + slot,
			},
			Source: types.SourceMenu,
		})
	}

	var out []types.Entry
	out = append(out, mealEntries...)
	if len(served) > 0 {
		out = append(out, types.Entry{
			Question:   "restaurant menu",
			Answer:     fmt.Sprintf("Our restaurant serves %s. Ask about a specific menu to see dishes and prices.", strings.Join(served, ", ")),
			Alternates: []string{"what is on the menu", "food menu", "what food do you have"},
			Source:     types.SourceMenu,
		})
	}
	return append(out, itemEntries...)
}

func dedupe(entries []types.Entry) []types.Entry {
	type key struct{ q, a string }

	out := make([]types.Entry, 0, len(entries))
	seen := make(map[key]struct{}, len(entries))
	for _, e := range entries {
		k := key{e.Question, e.Answer}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// dollars renders a price without a leading currency sign
func dollars(s Scalar) string {
	return strings.TrimSpace(strings.TrimPrefix(s.String(), "$"))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
