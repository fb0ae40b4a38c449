package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fdcSearchPattern = `=~^https://api\.nal\.usda\.gov/fdc/v1/foods/search`

func newUSDAForTest(t *testing.T) *USDAService {
	t.Helper()
	t.Setenv("USDA_API_KEY", "test-key")
	t.Setenv("USDA_API_URL", "")
	svc, err := NewUSDAService()
	require.NoError(t, err)
	// Route the service's own client through the mock transport.
	httpmock.ActivateNonDefault(svc.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return svc
}

func fdcAppleResponse() string {
	return `{
  "foods": [
    {
      "fdcId": 1102644,
      "description": "Apple, raw",
      "dataType": "Survey (FNDDS)",
      "foodNutrients": [
        {"nutrientNumber": "208", "nutrientName": "Energy", "unitName": "KCAL", "value": 52},
        {"nutrientNumber": "203", "nutrientName": "Protein", "unitName": "G", "value": 0.3},
        {"nutrientNumber": "205", "nutrientName": "Carbohydrate, by difference", "unitName": "G", "value": 14},
        {"nutrientNumber": "204", "nutrientName": "Total lipid (fat)", "unitName": "G", "value": 0.2},
        {"nutrientNumber": "307", "nutrientName": "Sodium, Na", "unitName": "MG", "value": 1}
      ]
    },
    {
      "fdcId": 2041155,
      "description": "APPLE JUICE DRINK",
      "dataType": "Branded",
      "brandOwner": "JuiceCo Inc",
      "foodNutrients": [
        {"nutrientNumber": "208", "nutrientName": "Energy", "unitName": "KCAL", "value": 46}
      ]
    }
  ]
}`
}

func TestUSDASearch_MapsProviderFields(t *testing.T) {
	svc := newUSDAForTest(t)
	httpmock.RegisterResponder("GET", fdcSearchPattern,
		httpmock.NewStringResponder(http.StatusOK, fdcAppleResponse()))

	results, err := svc.Search(context.Background(), "apple", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	apple := results[0]
	assert.Equal(t, "fdc:1102644", apple.ExternalID)
	assert.Equal(t, "Apple, raw", apple.Name)
	assert.Equal(t, "Survey (FNDDS)", apple.DataType)
	assert.True(t, apple.Standardized())
	assert.InDelta(t, 52, apple.Calories, 0.001)
	assert.InDelta(t, 0.3, apple.Protein, 0.001)
	assert.InDelta(t, 14, apple.Carbs, 0.001)
	assert.InDelta(t, 0.2, apple.Fat, 0.001)
	assert.InDelta(t, 1, apple.Sodium, 0.001)

	juice := results[1]
	assert.Equal(t, "JuiceCo Inc", juice.Brand)
	assert.False(t, juice.Standardized())
}

func TestUSDASearch_AccessAndQuotaErrorsDegrade(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"forbidden_bad_key", http.StatusForbidden},
		{"quota_exhausted", http.StatusTooManyRequests},
		{"server_error", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newUSDAForTest(t)
			httpmock.RegisterResponder("GET", fdcSearchPattern,
				httpmock.NewStringResponder(tt.statusCode, `{"error": "nope"}`))

			results, err := svc.Search(context.Background(), "apple", 10)
			require.Error(t, err)
			assert.Nil(t, results)
			assert.ErrorIs(t, err, ErrExternalUnavailable)
		})
	}
}

func TestUSDASearch_NetworkFailureDegrades(t *testing.T) {
	svc := newUSDAForTest(t)
	httpmock.RegisterResponder("GET", fdcSearchPattern,
		httpmock.NewErrorResponder(context.DeadlineExceeded))

	results, err := svc.Search(context.Background(), "apple", 10)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrExternalUnavailable)
}

func TestUSDASearch_InvalidJSONIsAnError(t *testing.T) {
	svc := newUSDAForTest(t)
	httpmock.RegisterResponder("GET", fdcSearchPattern,
		httpmock.NewStringResponder(http.StatusOK, `{not json`))

	results, err := svc.Search(context.Background(), "apple", 10)
	require.Error(t, err)
	assert.Nil(t, results)
}

func TestNewUSDAService_MissingKeyIsConfigError(t *testing.T) {
	t.Setenv("USDA_API_KEY", "")
	_, err := NewUSDAService()
	require.Error(t, err)
}
