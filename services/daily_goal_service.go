package services

import (
	"errors"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

type DailyGoalService struct {
	db      *gorm.DB
	mealSvc *MealService
}

func NewDailyGoalService(db *gorm.DB, mealSvc *MealService) *DailyGoalService {
	return &DailyGoalService{db: db, mealSvc: mealSvc}
}

// Activity multipliers applied to BMR.
var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// CalculateTargets derives daily targets from the profile: Mifflin-St Jeor
// BMR scaled by activity level, with a 30/40/30 protein/carb/fat split and
// guideline caps for sodium and sugar.
func CalculateTargets(user *models.User) models.DailyGoal {
	age := ageYears(user.Birthday)

	bmr := 10*user.WeightKg + 6.25*user.HeightCm - 5*float64(age)
	if user.Sex == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor, ok := activityFactors[user.ActivityLevel]
	if !ok {
		factor = activityFactors["sedentary"]
	}
	tdee := bmr * factor
	if tdee < 0 {
		tdee = 0
	}

	return models.DailyGoal{
		UserID:   user.ID,
		Calories: tdee,
		Protein:  tdee * 0.30 / 4,
		Carbs:    tdee * 0.40 / 4,
		Fat:      tdee * 0.30 / 9,
		Sodium:   2300,
		Sugar:    tdee * 0.10 / 4,
	}
}

func ageYears(birthday time.Time) int {
	if birthday.IsZero() {
		return 0
	}
	now := time.Now()
	years := now.Year() - birthday.Year()
	if now.YearDay() < birthday.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func (s *DailyGoalService) UpsertGoals(userID uint, goal models.DailyGoal) error {
	var existing models.DailyGoal
	err := s.db.Where("user_id = ?", userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal.UserID = userID
		return s.db.Create(&goal).Error
	}
	if err != nil {
		return err
	}

	existing.Calories = goal.Calories
	existing.Protein = goal.Protein
	existing.Carbs = goal.Carbs
	existing.Fat = goal.Fat
	existing.Sodium = goal.Sodium
	existing.Sugar = goal.Sugar
	return s.db.Save(&existing).Error
}

// Progress is one nutrient's consumed/goal pair for a day.
type Progress struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  float64 `json:"percent"`
}

// GetGoalsAndProgress sums the day's meal items against the user's goals.
// A user without stored goals gets zero targets, not an error.
func (s *DailyGoalService) GetGoalsAndProgress(userID uint, date time.Time) (*models.DailyGoal, map[string]Progress, error) {
	var goal models.DailyGoal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		goal = models.DailyGoal{UserID: userID}
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	meals, err := s.mealSvc.ListMealsByDateRange(userID, start, end)
	if err != nil {
		return &goal, nil, err
	}

	var cals, prot, carbs, fat, sodium, sugar float64
	for _, m := range meals {
		for _, it := range m.Items {
			cals += it.Calories
			prot += it.Protein
			carbs += it.Carbs
			fat += it.Fat
			sodium += it.Sodium
			sugar += it.Sugar
		}
	}

	pct := func(consumed, target float64) float64 {
		if target <= 0 {
			return 0
		}
		p := consumed / target
		if p > 1 {
			return 1
		}
		return p
	}

	progress := map[string]Progress{
		"calories": {Consumed: cals, Goal: goal.Calories, Percent: pct(cals, goal.Calories)},
		"protein":  {Consumed: prot, Goal: goal.Protein, Percent: pct(prot, goal.Protein)},
		"carbs":    {Consumed: carbs, Goal: goal.Carbs, Percent: pct(carbs, goal.Carbs)},
		"fat":      {Consumed: fat, Goal: goal.Fat, Percent: pct(fat, goal.Fat)},
		"sodium":   {Consumed: sodium, Goal: goal.Sodium, Percent: pct(sodium, goal.Sodium)},
		"sugar":    {Consumed: sugar, Goal: goal.Sugar, Percent: pct(sugar, goal.Sugar)},
	}

	return &goal, progress, nil
}
