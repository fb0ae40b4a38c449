package models

import "gorm.io/gorm"

// Where a FoodRecord came from.
const (
	SourceLocalCatalog    = "local_catalog"
	SourceExternalCatalog = "external_catalog"
	SourceUserCorrection  = "user_correction"
	SourceManualEntry     = "manual_entry"
)

// FoodRecord is one resolved food with per-100g nutrition facts.
// NameNormalized is the lookup key; TimesUsed counts every reuse.
type FoodRecord struct {
	gorm.Model
	Name           string `gorm:"not null"`
	NameNormalized string `gorm:"type:varchar(255);uniqueIndex;not null"`

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sugar    float64
	Sodium   float64 // mg

	Source       string  `gorm:"type:varchar(32);not null"`
	ExternalID   *string `gorm:"type:varchar(255)"`
	TimesUsed    int     `gorm:"not null;default:1"`
	DetectedByAI bool

	AddedByUserID uint `gorm:"index"`
}
