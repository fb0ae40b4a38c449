package models

import (
	"time"

	"gorm.io/gorm"
)

// One Meal (breakfast/lunch/…)
type Meal struct {
	gorm.Model
	UserID uint      // FK → users.id
	Type   string    // “Breakfast”|“Lunch”|…
	AteAt  time.Time // timestamp of the meal
	Items  []MealItem
}

// Each MealItem snapshots the nutrition of one resolved food,
// scaled to the eaten quantity.
type MealItem struct {
	gorm.Model
	MealID uint
	Meal   Meal

	FoodRecordID uint   `gorm:"index"` // 0 when the food could not be resolved
	FoodLabel    string // human label
	Grams        float64

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Sodium   float64
	Sugar    float64

	Safe     bool   // safety assessment
	Warnings string // comma-sep warnings
}
