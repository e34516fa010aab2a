package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/knowledge"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

func testRouter() *RoomRouter {
	return NewRoomRouter([]knowledge.Room{
		{RoomType: "Single", Description: "Cozy room for one."},
		{RoomType: "Double", Description: "Room for two.", PricePerNight: knowledge.Scalar{Number: 120, IsNumber: true, Set: true}},
		{Description: "no type"},
	})
}

func TestRoomTypesRule(t *testing.T) {
	res, ok := testRouter().Route("What room types do you have?", types.BackendTFIDF)
	require.True(t, ok)

	assert.True(t, res.Found)
	assert.Equal(t, 1.0, res.Score)
	assert.Equal(t, types.KindRule, res.Kind)
	assert.Equal(t, RuleRoomTypes, res.Rule)
	assert.Equal(t, types.BackendTFIDF, res.Backend)
	assert.Contains(t, res.Answer, "Single")
	assert.Contains(t, res.Answer, "Double")
	assert.NoError(t, res.Validate())
}

func TestSpecificRoomRule(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		contains []string
	}{
		{"known room price", "double room price", []string{"120"}},
		{"known room", "Tell me about the single", []string{"Cozy room for one."}},
		{"unknown room", "king room", []string{"king", "Single, Double"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := testRouter().Route(tt.query, types.BackendKeyword)
			require.True(t, ok)
			assert.True(t, res.Found)
			assert.Equal(t, 1.0, res.Score)
			assert.Equal(t, RuleSpecificRoom, res.Rule)
			for _, s := range tt.contains {
				assert.Contains(t, res.Answer, s)
			}
		})
	}
}

func TestRouteDeclines(t *testing.T) {
	r := testRouter()
	for _, q := range []string{"", "pool hours", "is room service available", "bedroom"} {
		_, ok := r.Route(q, types.BackendKeyword)
		assert.False(t, ok, "query %q", q)
	}

	_, ok := NewRoomRouter(nil).Route("what room types do you have", types.BackendKeyword)
	assert.False(t, ok, "no known rooms")

	var nilRouter *RoomRouter
	_, ok = nilRouter.Route("room", types.BackendKeyword)
	assert.False(t, ok)
}

func TestRoomTypesOrder(t *testing.T) {
	assert.Equal(t, []string{"Single", "Double"}, testRouter().RoomTypes())
}
