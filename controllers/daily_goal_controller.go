package controllers

import (
	"net/http"
	"time"

	"backend/config"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type DailyGoalController struct {
	goalSvc *services.DailyGoalService
}

func NewDailyGoalController(goalSvc *services.DailyGoalService) *DailyGoalController {
	return &DailyGoalController{goalSvc: goalSvc}
}

// PUT /goals  — explicit targets
func (gc *DailyGoalController) Upsert(c *gin.Context) {
	var req struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fat      float64 `json:"fat"`
		Sodium   float64 `json:"sodium"`
		Sugar    float64 `json:"sugar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	userID := c.GetUint("userID")
	goal := models.DailyGoal{
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Sodium:   req.Sodium,
		Sugar:    req.Sugar,
	}
	if err := gc.goalSvc.UpsertGoals(userID, goal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goals updated"})
}

// POST /goals/calculate — derive targets from the stored profile
func (gc *DailyGoalController) Calculate(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	goal := services.CalculateTargets(&user)
	if err := gc.goalSvc.UpsertGoals(userID, goal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, goal)
}

// GET /goals/progress?date=2025-06-01
func (gc *DailyGoalController) Progress(c *gin.Context) {
	userID := c.GetUint("userID")

	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	goal, progress, err := gc.goalSvc.GetGoalsAndProgress(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal, "progress": progress})
}
