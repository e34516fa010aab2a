package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "db_version": "1.2.0",
  "faq": [
    {"question": "What time is check-in?", "answer": "Check-in starts at 3 PM.", "alternates": ["check in time"]},
    {"question": "Is there parking?", "answer": "Yes, free on-site parking.", "alts": ["parking"]}
  ],
  "hotel_policies": {
    "pet_policy": "Pets up to 10kg are welcome.",
    "smoking": "Non-smoking property.",
    "max_guests": 4
  },
  "rooms": [
    {"room_type": "Single", "description": "Cozy room for one.", "features": ["Wi-Fi"], "price_per_night": 80},
    {"room_type": "Double", "description": "Room for two.", "price_per_night": "120"}
  ],
  "amenities": [
    {"amenity_name": "Pool", "description": "Outdoor heated pool.", "rules": {"timings": "8am-10pm"}}
  ],
  "menus": {
    "dinner": [{"name": "Steak", "price": 25.5}],
    "breakfast": [{"name": "Pancakes", "price": 8, "description": "Stack of three with syrup."}]
  }
}`

const sampleYAML = `
db_version: 1.2.0
faq:
  - question: What time is check-in?
    answer: Check-in starts at 3 PM.
    alternates: [check in time]
hotel_policies:
  pet_policy: Pets up to 10kg are welcome.
  smoking: Non-smoking property.
  max_guests: 4
rooms:
  - room_type: Single
    price_per_night: 80
menus:
  dinner:
    - name: Steak
      price: 25.5
  breakfast:
    - name: Pancakes
      price: "$8"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	doc, err := Load(writeFile(t, "hotel.json", sampleJSON))
	require.NoError(t, err)

	assert.Len(t, doc.FAQ, 2)
	assert.Equal(t, []string{"parking"}, doc.FAQ[1].Alts)

	// non-string policy values are dropped, order is preserved
	require.Len(t, doc.Policies, 2)
	assert.Equal(t, "pet_policy", doc.Policies[0].Key)
	assert.Equal(t, "smoking", doc.Policies[1].Key)

	assert.Equal(t, "80", doc.Rooms[0].PricePerNight.String())
	assert.Equal(t, "120", doc.Rooms[1].PricePerNight.String())

	require.Len(t, doc.Menus, 2)
	assert.Equal(t, "dinner", doc.Menus[0].Name)
	assert.Equal(t, "breakfast", doc.Menus[1].Name)
	assert.Equal(t, "25.5", doc.Menus[0].Items[0].Price.String())

	assert.Equal(t, "8am-10pm", doc.Amenities[0].Rules.Timings.String())

	v, err := doc.Version()
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v.String())
}

func TestLoadYAML(t *testing.T) {
	doc, err := Load(writeFile(t, "hotel.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Len(t, doc.FAQ, 1)
	require.Len(t, doc.Policies, 2)
	assert.Equal(t, "smoking", doc.Policies[1].Key)
	assert.Equal(t, "80", doc.Rooms[0].PricePerNight.String())

	require.Len(t, doc.Menus, 2)
	assert.Equal(t, "dinner", doc.Menus[0].Name)
	assert.Equal(t, "$8", doc.Menus[1].Items[0].Price.String())

	v, err := doc.Version()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Major())
}

func TestLoadLegacyList(t *testing.T) {
	doc, err := Load(writeFile(t, "faq.json", `[{"question": "wifi?", "answer": "Yes."}]`))
	require.NoError(t, err)
	require.Len(t, doc.FAQ, 1)
	assert.Equal(t, "wifi?", doc.FAQ[0].Question)

	doc, err = Load(writeFile(t, "faq.yml", "- question: wifi?\n  answer: Yes.\n"))
	require.NoError(t, err)
	require.Len(t, doc.FAQ, 1)
}

func TestLoadStripsBOM(t *testing.T) {
	doc, err := Load(writeFile(t, "bom.json", "\ufeff"+`{"faq": [{"question": "q", "answer": "a"}]}`))
	require.NoError(t, err)
	assert.Len(t, doc.FAQ, 1)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		target  error
	}{
		{name: "malformed json", file: "bad.json", content: `{"faq": [`},
		{name: "malformed yaml", file: "bad.yaml", content: "faq: [unterminated"},
		{name: "empty", file: "empty.json", content: "  \n", target: ErrEmptyDocument},
		{name: "policies not a mapping", file: "pol.json", content: `{"hotel_policies": ["a"]}`, target: ErrNotMapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := Load(path)
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, path, loadErr.Path)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersionMissing(t *testing.T) {
	doc := &Document{}
	_, err := doc.Version()
	assert.ErrorIs(t, err, ErrNoVersion)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("a/b.YAML"))
	assert.Equal(t, FormatYAML, DetectFormat("x.yml"))
	assert.Equal(t, FormatJSON, DetectFormat("x.json"))
	assert.Equal(t, FormatJSON, DetectFormat("noext"))
}
