package services

import (
	"context"
	"math"
	"time"

	"backend/models"
	"backend/utils"

	gocache "github.com/patrickmn/go-cache"
)

// Plausibility bounds for a per-100g record. Heuristics, kept as tunable
// constants rather than business rules.
const (
	maxMacroGrams      = 100.0 // carbs/protein/fat per 100 g
	maxCaloriesPer100g = 900.0
	// When calories exceed this, cross-check against the macro-derived
	// estimate (4p + 4c + 9f) and reject divergence beyond macroKcalSlack.
	kcalCrossCheckFloor = 50.0
	macroKcalSlack      = 0.30
)

// How long an exhausted external lookup is remembered, so a name that just
// failed everywhere does not burn quota again on the next keystroke.
const negativeCacheTTL = 15 * time.Minute

// ResolverService turns a free-text food name into a FoodRecord:
// local catalog first, then the external catalogs with a variant retry
// ladder, persisting whatever wins for future lookups.
type ResolverService struct {
	catalog    *CatalogService
	providers  []FoodCatalog
	misses     *gocache.Cache
	maxResults int
}

func NewResolverService(catalog *CatalogService, providers []FoodCatalog) *ResolverService {
	return &ResolverService{
		catalog:    catalog,
		providers:  providers,
		misses:     gocache.New(negativeCacheTTL, 2*negativeCacheTTL),
		maxResults: 10,
	}
}

// Resolve returns the best nutrition record for foodName, or (nil, nil)
// when nothing was found anywhere — not-found is a normal outcome, never an
// error. aiDetected tags records that originated from an AI food guess.
//
// An external outage is swallowed (the caller falls back to manual entry);
// a StorageError propagates.
func (s *ResolverService) Resolve(ctx context.Context, foodName string, aiDetected bool) (*models.FoodRecord, error) {
	normalized := utils.NormalizeFoodName(foodName)
	if normalized == "" {
		return nil, nil
	}

	// Fast path: external calls are rate-limited and metered, a local hit
	// must never trigger one.
	rec, err := s.catalog.Find(foodName)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		if err := s.catalog.Touch(rec.ID); err != nil {
			return nil, err
		}
		rec.TimesUsed++
		return rec, nil
	}

	if _, recentMiss := s.misses.Get(normalized); recentMiss {
		return nil, nil
	}

	winner, fallback, searchErr := s.searchExternal(ctx, foodName)
	if searchErr != nil {
		// Outage: resolve to none. Nothing is cached as a miss, so the
		// name is retried as soon as the provider is back.
		return nil, nil
	}
	if winner == nil {
		if fallback != nil {
			// Implausible numbers may serve this one request but are never
			// persisted, so they cannot poison future lookups.
			return candidateToRecord(fallback, normalized, aiDetected), nil
		}
		s.misses.SetDefault(normalized, true)
		return nil, nil
	}

	resolved := candidateToRecord(winner, normalized, aiDetected)
	if err := s.catalog.Upsert(resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

// searchExternal walks the variant ladder across the configured providers,
// stopping at the first variant with a plausible candidate. It returns the
// scored winner, plus the best implausible candidate seen in case nothing
// plausible ever shows up. Any provider error aborts the ladder — an outage
// on one variant will not improve on the next — and discards the fallback:
// the outcome of an interrupted ladder is none, not a half-vetted guess.
func (s *ResolverService) searchExternal(ctx context.Context, foodName string) (winner, fallback *RawCandidate, err error) {
	for _, variant := range utils.QueryVariants(foodName) {
		for _, provider := range s.providers {
			candidates, err := provider.Search(ctx, variant, s.maxResults)
			if err != nil {
				return nil, nil, err
			}
			if len(candidates) == 0 {
				continue
			}

			plausible := candidates[:0:0]
			for i := range candidates {
				if plausibleCandidate(&candidates[i]) {
					plausible = append(plausible, candidates[i])
				}
			}
			if len(plausible) > 0 {
				return PickBest(plausible, variant), fallback, nil
			}
			if fallback == nil {
				fallback = PickBest(candidates, variant)
			}
		}
	}
	return nil, fallback, nil
}

// Forget drops the remembered miss for a name, e.g. after a correction
// writes a local record for it.
func (s *ResolverService) Forget(name string) {
	s.misses.Delete(utils.NormalizeFoodName(name))
}

func candidateToRecord(c *RawCandidate, nameNormalized string, aiDetected bool) *models.FoodRecord {
	rec := &models.FoodRecord{
		Name:           c.Name,
		NameNormalized: nameNormalized,
		Calories:       c.Calories,
		Protein:        c.Protein,
		Carbs:          c.Carbs,
		Fat:            c.Fat,
		Fiber:          c.Fiber,
		Sugar:          c.Sugar,
		Sodium:         c.Sodium,
		Source:         models.SourceExternalCatalog,
		TimesUsed:      1,
		DetectedByAI:   aiDetected,
	}
	if c.ExternalID != "" {
		id := c.ExternalID
		rec.ExternalID = &id
	}
	return rec
}

func plausibleCandidate(c *RawCandidate) bool {
	return plausibleMacros(c.Calories, c.Protein, c.Carbs, c.Fat)
}

// Verify reports whether a record passes the plausibility check. Failing
// records may still be returned once for immediate use but are never
// persisted.
func Verify(rec *models.FoodRecord) bool {
	return plausibleMacros(rec.Calories, rec.Protein, rec.Carbs, rec.Fat)
}

func plausibleMacros(calories, protein, carbs, fat float64) bool {
	if calories < 0 || calories > maxCaloriesPer100g {
		return false
	}
	for _, g := range []float64{protein, carbs, fat} {
		if g < 0 || g > maxMacroGrams {
			return false
		}
	}
	if calories > kcalCrossCheckFloor {
		estimated := protein*4 + carbs*4 + fat*9
		if math.Abs(calories-estimated)/calories > macroKcalSlack {
			return false
		}
	}
	return true
}
