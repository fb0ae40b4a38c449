package services

import (
	"fmt"

	"backend/models"
	"backend/utils"
)

// NutritionFacts carries user-confirmed per-100g values for a correction
// or a manual entry.
type NutritionFacts struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// CorrectionService records user corrections to AI-detected food names so
// future resolutions hit the local catalog instead of repeating the bad
// external guess. Past meal entries are left alone.
type CorrectionService struct {
	catalog  *CatalogService
	resolver *ResolverService
}

func NewCorrectionService(catalog *CatalogService, resolver *ResolverService) *CorrectionService {
	return &CorrectionService{catalog: catalog, resolver: resolver}
}

// Learn stores the corrected record under the corrected name, and under the
// AI-detected name as well when the two normalize differently, so either
// phrasing resolves locally from now on.
func (s *CorrectionService) Learn(aiDetectedName, userCorrectedName string, facts NutritionFacts) (*models.FoodRecord, error) {
	correctedKey := utils.NormalizeFoodName(userCorrectedName)
	if correctedKey == "" {
		return nil, fmt.Errorf("corrected name is empty")
	}
	if !plausibleMacros(facts.Calories, facts.Protein, facts.Carbs, facts.Fat) {
		return nil, ErrImplausible
	}

	rec := &models.FoodRecord{
		Name:           userCorrectedName,
		NameNormalized: correctedKey,
		Calories:       facts.Calories,
		Protein:        facts.Protein,
		Carbs:          facts.Carbs,
		Fat:            facts.Fat,
		Fiber:          facts.Fiber,
		Sugar:          facts.Sugar,
		Sodium:         facts.Sodium,
		Source:         models.SourceUserCorrection,
		TimesUsed:      1,
		DetectedByAI:   true,
	}
	if err := s.catalog.Upsert(rec); err != nil {
		return nil, err
	}

	if aiKey := utils.NormalizeFoodName(aiDetectedName); aiKey != "" && aiKey != correctedKey {
		alias := *rec
		alias.ID = 0
		alias.NameNormalized = aiKey
		alias.TimesUsed = 1
		if err := s.catalog.Upsert(&alias); err != nil {
			return nil, err
		}
		s.resolver.Forget(aiDetectedName)
	}
	s.resolver.Forget(userCorrectedName)

	return rec, nil
}
