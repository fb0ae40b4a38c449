package services

import (
	"strings"

	"backend/utils"
)

// Additive scoring bonuses. Completeness earns a little, a standardized
// composition entry earns the most.
const (
	calorieBonus      = 10 // candidate reports calories at all
	macroBonus        = 5  // per macro (protein/carbs/fat) present
	standardizedBonus = 20 // survey/foundation-style provider category
	brandBonus        = 5  // brand or manufacturer present
	substringBonus    = 15 // candidate name contains the normalized query
)

// ScoreCandidate ranks one external hit against the query. Deterministic:
// same candidate and query always score the same.
func ScoreCandidate(c *RawCandidate, query string) int {
	score := 0
	if c.Calories > 0 {
		score += calorieBonus
	}
	if c.Protein > 0 {
		score += macroBonus
	}
	if c.Carbs > 0 {
		score += macroBonus
	}
	if c.Fat > 0 {
		score += macroBonus
	}
	if c.Standardized() {
		score += standardizedBonus
	}
	if strings.TrimSpace(c.Brand) != "" {
		score += brandBonus
	}
	normalized := utils.NormalizeFoodName(query)
	if normalized != "" && strings.Contains(strings.ToLower(c.Name), normalized) {
		score += substringBonus
	}
	return score
}

// PickBest returns the highest-scoring candidate, keeping the provider's
// original order on ties. Empty input returns nil.
func PickBest(candidates []RawCandidate, query string) *RawCandidate {
	best := -1
	idx := -1
	for i := range candidates {
		if s := ScoreCandidate(&candidates[i], query); s > best {
			best = s
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	return &candidates[idx]
}
