package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

type MealService struct {
	db      *gorm.DB
	foodSvc *FoodService
}

func NewMealService(db *gorm.DB, fs *FoodService) *MealService {
	return &MealService{db: db, foodSvc: fs}
}

// MealItemRequest names a food in free text; resolution happens here.
type MealItemRequest struct {
	Name       string  `json:"name"`
	Grams      float64 `json:"grams"`
	AIDetected bool    `json:"ai_detected"`
	// Set when the food could not be resolved and the user typed values.
	Manual *NutritionFacts `json:"manual,omitempty"`
}

func (s *MealService) AddMeal(
	ctx context.Context,
	userID uint,
	mealType string,
	ateAt time.Time,
	items []MealItemRequest,
) (*models.Meal, error) {
	// Resolution happens before the transaction: catalog writes from a
	// lookup are independent of whether this meal commits.
	built := make([]*models.MealItem, 0, len(items))
	for _, it := range items {
		mi, err := s.buildItem(ctx, it)
		if err != nil {
			return nil, err
		}
		built = append(built, mi)
	}

	meal := &models.Meal{UserID: userID, Type: mealType, AteAt: ateAt}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return err
		}
		for _, mi := range built {
			mi.MealID = meal.ID
			if err := tx.Create(mi).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var populated models.Meal
	if err := s.db.Preload("Items").First(&populated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

// buildItem resolves the food and snapshots its macros scaled to the eaten
// grams. An unresolved food with user-typed values still logs; an
// unresolved food without them logs with zero macros rather than blocking
// the meal.
func (s *MealService) buildItem(ctx context.Context, it MealItemRequest) (*models.MealItem, error) {
	grams := it.Grams
	if grams <= 0 {
		grams = 100
	}

	mi := &models.MealItem{
		FoodLabel: it.Name,
		Grams:     grams,
	}

	var facts NutritionFacts
	rec, err := s.foodSvc.Resolve(ctx, it.Name, it.AIDetected)
	if err != nil {
		return nil, err
	}
	switch {
	case rec != nil:
		mi.FoodRecordID = rec.ID
		mi.FoodLabel = rec.Name
		facts = NutritionFacts{
			Calories: rec.Calories, Protein: rec.Protein, Carbs: rec.Carbs,
			Fat: rec.Fat, Fiber: rec.Fiber, Sugar: rec.Sugar, Sodium: rec.Sodium,
		}
	case it.Manual != nil:
		facts = *it.Manual
	}

	scale := grams / 100.0
	mi.Calories = facts.Calories * scale
	mi.Protein = facts.Protein * scale
	mi.Carbs = facts.Carbs * scale
	mi.Fat = facts.Fat * scale
	mi.Sodium = facts.Sodium * scale
	mi.Sugar = facts.Sugar * scale

	warnings := utils.AssessFoodSafety(mi.FoodLabel, mi.Calories, mi.Sugar, mi.Sodium, mi.Fat)
	mi.Safe = len(warnings) == 0
	mi.Warnings = strings.Join(warnings, "; ")
	return mi, nil
}

func (s *MealService) ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) GetMeal(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.
		Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

func (s *MealService) UpdateMeal(
	ctx context.Context,
	userID, mealID uint,
	mealType string,
	ateAt time.Time,
	items []MealItemRequest,
) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}

	built := make([]*models.MealItem, 0, len(items))
	for _, it := range items {
		mi, err := s.buildItem(ctx, it)
		if err != nil {
			return nil, err
		}
		built = append(built, mi)
	}

	meal.Type = mealType
	meal.AteAt = ateAt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&meal).Error; err != nil {
			return err
		}
		if err := tx.
			Where("meal_id = ?", meal.ID).
			Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		for _, mi := range built {
			mi.MealID = meal.ID
			if err := tx.Create(mi).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var updated models.Meal
	if err := s.db.Preload("Items").First(&updated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMeal removes a meal and its items. Ownership is verified before
// anything is touched, so a foreign meal id deletes nothing at all.
func (s *MealService) DeleteMeal(userID, mealID uint) error {
	var meal models.Meal
	if err := s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("meal_id = ?", meal.ID).
			Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meal).Error
	})
}

func (s *MealService) ListMealsByDateRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}
