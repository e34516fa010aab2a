package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"lowercases", "What Time Is CHECK-IN?", "what time is check in"},
		{"collapses separators", "late__check-out // policy", "late check out policy"},
		{"apostrophe", "What's the Wi-Fi password?", "whats the wi fi password"},
		{"curly apostrophe", "Don’t forget", "dont forget"},
		{"punctuation only", "?!...", ""},
		{"digits kept", "Room 101, $120/night", "room 101 120 night"},
		{"trims", "  pool  ", "pool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"What Time Is CHECK-IN?",
		"  late__check-out // policy ",
		"Café au lait & croissant",
		"Don’t",
		"ÄÖÜ straße",
		"",
		"a-b_c/d e",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"double", "room", "price"}, Tokenize("Double-Room PRICE?"))
	assert.Equal(t, []string{"room", "101"}, Tokenize("room #101"))
	assert.Nil(t, Tokenize("   "))

	// non-ascii letters are kept by Normalize but are not token characters
	assert.Equal(t, []string{"caf", "au", "lait"}, Tokenize("Café au lait"))
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("room room service")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "room")
	assert.Contains(t, set, "service")
}
