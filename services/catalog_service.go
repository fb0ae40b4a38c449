package services

import (
	"errors"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogService is the local food catalog: every previously resolved food
// lives here keyed by its normalized name, so repeat lookups never leave
// the database.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Find looks up a food by name. An exact normalized match wins outright;
// otherwise substring containment, ranked by times_used desc then id, so
// the result is deterministic. Zero matches is (nil, nil), not an error.
func (s *CatalogService) Find(nameQuery string) (*models.FoodRecord, error) {
	normalized := utils.NormalizeFoodName(nameQuery)
	if normalized == "" {
		return nil, nil
	}

	var rec models.FoodRecord
	err := s.db.Where("name_normalized = ?", normalized).First(&rec).Error
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &StorageError{Op: "find", Err: err}
	}

	err = s.db.
		Where("name_normalized LIKE ?", "%"+normalized+"%").
		Order("times_used DESC, id ASC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "find", Err: err}
	}
	return &rec, nil
}

// Upsert inserts the record, or — when its normalized name already exists —
// bumps times_used and refreshes the nutrition snapshot in a single
// statement. The increment happens in the database so concurrent resolves
// of the same name cannot lose updates or leave duplicate rows.
func (s *CatalogService) Upsert(rec *models.FoodRecord) error {
	if rec.NameNormalized == "" {
		rec.NameNormalized = utils.NormalizeFoodName(rec.Name)
	}
	if rec.TimesUsed < 1 {
		rec.TimesUsed = 1
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name_normalized"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"times_used":     gorm.Expr("food_records.times_used + 1"),
			"name":           rec.Name,
			"calories":       rec.Calories,
			"protein":        rec.Protein,
			"carbs":          rec.Carbs,
			"fat":            rec.Fat,
			"fiber":          rec.Fiber,
			"sugar":          rec.Sugar,
			"sodium":         rec.Sodium,
			"source":         rec.Source,
			"external_id":    rec.ExternalID,
			"detected_by_ai": rec.DetectedByAI,
			"updated_at":     time.Now(),
		}),
	}).Create(rec).Error
	if err != nil {
		return &StorageError{Op: "upsert", Err: err}
	}
	return nil
}

// Touch records one more reuse of an existing row.
func (s *CatalogService) Touch(id uint) error {
	err := s.db.Model(&models.FoodRecord{}).
		Where("id = ?", id).
		Update("times_used", gorm.Expr("times_used + 1")).Error
	if err != nil {
		return &StorageError{Op: "touch", Err: err}
	}
	return nil
}

// MostPopular returns up to limit records ordered by usage, for quick-add
// suggestions.
func (s *CatalogService) MostPopular(limit int) ([]models.FoodRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var recs []models.FoodRecord
	err := s.db.
		Order("times_used DESC, id ASC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, &StorageError{Op: "most_popular", Err: err}
	}
	return recs, nil
}
