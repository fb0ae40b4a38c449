package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFoodName(t *testing.T) {
	assert.Equal(t, "chicken breast", NormalizeFoodName("  Chicken, Breast!  "))
	assert.Equal(t, "apple raw", NormalizeFoodName("Apple,   RAW"))
	assert.Equal(t, "", NormalizeFoodName("   "))
	assert.Equal(t, "", NormalizeFoodName("!?!"))
}

func TestQueryVariants(t *testing.T) {
	assert.Equal(t,
		[]string{"apples", "apples raw", "apples cooked", "apple"},
		QueryVariants("apples"))

	// A name that is its own singular still yields four attempts.
	assert.Equal(t,
		[]string{"rice", "rice raw", "rice cooked", "rice"},
		QueryVariants("rice"))
}

func TestSingularize(t *testing.T) {
	assert.Equal(t, "apple", Singularize("apples"))
	assert.Equal(t, "grass", Singularize("grass"))
	assert.Equal(t, "egg", Singularize("eggs"))
	assert.Equal(t, "ham", Singularize("ham"))
}
