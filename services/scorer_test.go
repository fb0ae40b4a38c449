package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCandidate(t *testing.T) {
	generic := RawCandidate{
		Name:     "Apple, raw",
		DataType: "Survey (FNDDS)",
		Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2,
	}
	// calories + three macros + standardized + name contains "apple"
	assert.Equal(t, 10+5+5+5+20+15, ScoreCandidate(&generic, "apple"))

	branded := RawCandidate{
		Name:     "Fizzy Cola",
		Brand:    "SodaCo",
		DataType: "Branded",
	}
	// brand only: no calories, no macros, no name match
	assert.Equal(t, 5, ScoreCandidate(&branded, "apple"))
}

func TestScoreCandidate_Deterministic(t *testing.T) {
	c := RawCandidate{Name: "Cheddar Cheese", Brand: "Dairy Inc", DataType: "Branded",
		Calories: 402, Protein: 25, Carbs: 1.3, Fat: 33}
	first := ScoreCandidate(&c, "cheddar cheese")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ScoreCandidate(&c, "cheddar cheese"))
	}
}

func TestPickBest(t *testing.T) {
	candidates := []RawCandidate{
		{Name: "Fizzy Apple Drink", Brand: "SodaCo", DataType: "Branded"},
		{Name: "Apple, raw", DataType: "Survey (FNDDS)", Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2},
	}

	best := PickBest(candidates, "apple")
	require.NotNil(t, best)
	assert.Equal(t, "Apple, raw", best.Name)
}

func TestPickBest_Empty(t *testing.T) {
	assert.Nil(t, PickBest(nil, "apple"))
	assert.Nil(t, PickBest([]RawCandidate{}, "apple"))
}

func TestPickBest_TieKeepsProviderOrder(t *testing.T) {
	// Identical candidates: the first in provider order must win.
	candidates := []RawCandidate{
		{ExternalID: "a", Name: "Oatmeal", DataType: "Foundation", Calories: 68},
		{ExternalID: "b", Name: "Oatmeal", DataType: "Foundation", Calories: 68},
	}
	best := PickBest(candidates, "oatmeal")
	require.NotNil(t, best)
	assert.Equal(t, "a", best.ExternalID)
}

func TestStandardized(t *testing.T) {
	assert.True(t, (&RawCandidate{DataType: "Survey (FNDDS)"}).Standardized())
	assert.True(t, (&RawCandidate{DataType: "Foundation"}).Standardized())
	assert.True(t, (&RawCandidate{DataType: "SR Legacy"}).Standardized())
	assert.False(t, (&RawCandidate{DataType: "Branded"}).Standardized())
	assert.False(t, (&RawCandidate{}).Standardized())
}
