package services

import "context"

// RawCandidate is one unranked external catalog hit, already mapped from
// the provider's own nutrient labels into the canonical per-100g fields.
type RawCandidate struct {
	ExternalID string
	Name       string
	Brand      string
	DataType   string // provider category, e.g. "Survey (FNDDS)" or "Branded"

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sugar    float64
	Sodium   float64 // mg
}

// Standardized reports whether the provider classifies this entry as a
// standardized/survey-style composition record rather than a branded or
// user-submitted one.
func (c *RawCandidate) Standardized() bool {
	switch c.DataType {
	case "Survey (FNDDS)", "Foundation", "SR Legacy":
		return true
	}
	return false
}

// FoodCatalog is a third-party nutrition database queried by free-text
// name. Implementations return ErrExternalUnavailable for rate limits,
// auth failures and timeouts so the resolver can degrade gracefully.
type FoodCatalog interface {
	Search(ctx context.Context, query string, maxResults int) ([]RawCandidate, error)
}
