package services

import (
	"context"
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTargets_MifflinStJeor(t *testing.T) {
	user := &models.User{
		Sex:           "male",
		WeightKg:      80,
		HeightCm:      180,
		Birthday:      time.Now().AddDate(-30, 0, -1),
		ActivityLevel: "moderate",
	}

	goal := CalculateTargets(user)

	// BMR = 10*80 + 6.25*180 - 5*30 + 5 = 1780; TDEE = 1780 * 1.55
	assert.InDelta(t, 2759, goal.Calories, 0.5)
	assert.InDelta(t, 2759*0.30/4, goal.Protein, 0.5)
	assert.InDelta(t, 2759*0.40/4, goal.Carbs, 0.5)
	assert.InDelta(t, 2759*0.30/9, goal.Fat, 0.5)
	assert.InDelta(t, 2300, goal.Sodium, 0.001)
}

func TestCalculateTargets_FemaleOffsetAndUnknownActivity(t *testing.T) {
	user := &models.User{
		Sex:      "female",
		WeightKg: 60,
		HeightCm: 165,
		Birthday: time.Now().AddDate(-25, 0, -1),
		// Unknown level falls back to sedentary.
		ActivityLevel: "heroic",
	}

	goal := CalculateTargets(user)

	// BMR = 600 + 1031.25 - 125 - 161 = 1345.25; TDEE = 1345.25 * 1.2
	assert.InDelta(t, 1614.3, goal.Calories, 0.5)
}

func TestGoalProgressRollup(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogService(db)
	resolver := NewResolverService(catalog, []FoodCatalog{&fakeCatalog{}})
	foodSvc := NewFoodService(resolver, catalog, nil)
	mealSvc := NewMealService(db, foodSvc)
	goalSvc := NewDailyGoalService(db, mealSvc)

	userID := uint(1)
	require.NoError(t, goalSvc.UpsertGoals(userID, models.DailyGoal{
		Calories: 2000, Protein: 150, Carbs: 200, Fat: 65, Sodium: 2300, Sugar: 50,
	}))

	// Seed a resolvable food locally, then log 200 g of it.
	require.NoError(t, catalog.Upsert(&models.FoodRecord{
		Name: "Chicken Breast", Calories: 165, Protein: 31, Fat: 3.6,
		Source: models.SourceManualEntry,
	}))

	_, err := mealSvc.AddMeal(context.Background(), userID, "Lunch", time.Now(), []MealItemRequest{
		{Name: "chicken breast", Grams: 200},
	})
	require.NoError(t, err)

	goal, progress, err := goalSvc.GetGoalsAndProgress(userID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, goal)

	assert.InDelta(t, 330, progress["calories"].Consumed, 0.01)
	assert.InDelta(t, 62, progress["protein"].Consumed, 0.01)
	assert.InDelta(t, 330.0/2000.0, progress["calories"].Percent, 0.001)
}

func TestUpsertGoals_UpdateInPlace(t *testing.T) {
	db := setupTestDB(t)
	goalSvc := NewDailyGoalService(db, nil)

	require.NoError(t, goalSvc.UpsertGoals(7, models.DailyGoal{Calories: 1800}))
	require.NoError(t, goalSvc.UpsertGoals(7, models.DailyGoal{Calories: 2100}))

	var count int64
	require.NoError(t, db.Model(&models.DailyGoal{}).Where("user_id = ?", 7).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var goal models.DailyGoal
	require.NoError(t, db.Where("user_id = ?", 7).First(&goal).Error)
	assert.InDelta(t, 2100, goal.Calories, 0.001)
}
