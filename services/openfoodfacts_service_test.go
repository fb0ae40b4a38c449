package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offSearchPattern = `=~^https://world\.openfoodfacts\.org/cgi/search\.pl`

func newOFFForTest(t *testing.T) *OpenFoodFactsService {
	t.Helper()
	t.Setenv("OFF_API_URL", "")
	svc := NewOpenFoodFactsService()
	httpmock.ActivateNonDefault(svc.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return svc
}

func TestOFFSearch_MapsNutriments(t *testing.T) {
	svc := newOFFForTest(t)
	httpmock.RegisterResponder("GET", offSearchPattern,
		httpmock.NewStringResponder(http.StatusOK, `{
  "products": [
    {
      "code": "737628064502",
      "product_name": "Rice Noodles",
      "brands": "Thai Kitchen",
      "nutriments": {
        "energy-kcal_100g": 385,
        "proteins_100g": "7.5",
        "carbohydrates_100g": 83.3,
        "fat_100g": 1.9,
        "sodium_100g": 0.5
      }
    },
    {
      "code": "000",
      "product_name": "",
      "nutriments": {}
    }
  ]
}`))

	results, err := svc.Search(context.Background(), "rice noodles", 10)
	require.NoError(t, err)
	require.Len(t, results, 1, "nameless products are dropped")

	c := results[0]
	assert.Equal(t, "off:737628064502", c.ExternalID)
	assert.Equal(t, "Rice Noodles", c.Name)
	assert.Equal(t, "Thai Kitchen", c.Brand)
	assert.False(t, c.Standardized())
	assert.InDelta(t, 385, c.Calories, 0.001)
	assert.InDelta(t, 7.5, c.Protein, 0.001, "numeric strings are coerced")
	assert.InDelta(t, 83.3, c.Carbs, 0.001)
	assert.InDelta(t, 500, c.Sodium, 0.001, "OFF grams become mg")
}

func TestOFFSearch_KilojouleFallback(t *testing.T) {
	svc := newOFFForTest(t)
	httpmock.RegisterResponder("GET", offSearchPattern,
		httpmock.NewStringResponder(http.StatusOK, `{
  "products": [
    {
      "code": "123",
      "product_name": "Mystery Snack",
      "nutriments": {"energy-kj_100g": 418.4}
    }
  ]
}`))

	results, err := svc.Search(context.Background(), "mystery snack", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 100, results[0].Calories, 0.01)
}

func TestOFFSearch_RateLimitDegrades(t *testing.T) {
	svc := newOFFForTest(t)
	httpmock.RegisterResponder("GET", offSearchPattern,
		httpmock.NewStringResponder(http.StatusTooManyRequests, ""))

	_, err := svc.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExternalUnavailable)
}
