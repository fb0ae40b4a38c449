package services

import (
	"context"
	"fmt"

	"backend/models"
	"backend/utils"
)

// FoodService is the food-facing facade: free-text resolution, photo
// recognition and quick-add suggestions, all backed by the resolver.
type FoodService struct {
	resolver   *ResolverService
	catalog    *CatalogService
	recognizer *RekognitionService
}

func NewFoodService(resolver *ResolverService, catalog *CatalogService, rek *RekognitionService) *FoodService {
	return &FoodService{resolver: resolver, catalog: catalog, recognizer: rek}
}

// Resolve looks up one food name. A nil record with nil error means
// nothing was found and the caller should offer manual entry.
func (s *FoodService) Resolve(ctx context.Context, name string, aiDetected bool) (*models.FoodRecord, error) {
	return s.resolver.Resolve(ctx, name, aiDetected)
}

// Recognize runs photo labels through the resolver in confidence order and
// returns the first label that resolves, tagged as AI-detected.
func (s *FoodService) Recognize(ctx context.Context, base64Img string) (*models.FoodRecord, string, error) {
	if s.recognizer == nil {
		return nil, "", fmt.Errorf("image recognition not configured")
	}
	labels, err := s.recognizer.RecognizeLabels(ctx, base64Img)
	if err != nil {
		return nil, "", err
	}
	if len(labels) == 0 {
		return nil, "", fmt.Errorf("no labels detected")
	}

	for _, label := range labels {
		rec, err := s.resolver.Resolve(ctx, label, true)
		if err != nil {
			return nil, label, err
		}
		if rec != nil {
			return rec, label, nil
		}
	}
	// Nothing resolved; hand back the top label so the user can correct it.
	return nil, labels[0], nil
}

// Popular returns the most reused catalog records for quick-add.
func (s *FoodService) Popular(limit int) ([]models.FoodRecord, error) {
	return s.catalog.MostPopular(limit)
}

// ManualEntry persists user-typed nutrition as an authoritative record.
func (s *FoodService) ManualEntry(userID uint, name string, facts NutritionFacts) (*models.FoodRecord, error) {
	key := utils.NormalizeFoodName(name)
	if key == "" {
		return nil, fmt.Errorf("food name is empty")
	}
	if !plausibleMacros(facts.Calories, facts.Protein, facts.Carbs, facts.Fat) {
		return nil, ErrImplausible
	}
	rec := &models.FoodRecord{
		Name:           name,
		NameNormalized: key,
		Calories:       facts.Calories,
		Protein:        facts.Protein,
		Carbs:          facts.Carbs,
		Fat:            facts.Fat,
		Fiber:          facts.Fiber,
		Sugar:          facts.Sugar,
		Sodium:         facts.Sodium,
		Source:         models.SourceManualEntry,
		TimesUsed:      1,
		AddedByUserID:  userID,
	}
	if err := s.catalog.Upsert(rec); err != nil {
		return nil, err
	}
	s.resolver.Forget(name)
	return rec, nil
}
