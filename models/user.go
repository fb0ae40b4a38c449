package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	FullName string
	Sex      string // "male" | "female"
	Birthday time.Time
	HeightCm float64
	WeightKg float64
	// sedentary | light | moderate | active | very_active
	ActivityLevel string
	Disabled      bool
}
