package controllers

import (
	"net/http"
	"strconv"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	mealSvc *services.MealService
}

func NewMealController(mealSvc *services.MealService) *MealController {
	return &MealController{mealSvc: mealSvc}
}

type mealRequest struct {
	Type  string                     `json:"type" binding:"required"`
	AteAt time.Time                  `json:"ate_at"`
	Items []services.MealItemRequest `json:"items" binding:"required"`
}

// POST /meals
func (mc *MealController) Add(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.AteAt.IsZero() {
		req.AteAt = time.Now()
	}

	userID := c.GetUint("userID")
	meal, err := mc.mealSvc.AddMeal(c.Request.Context(), userID, req.Type, req.AteAt, req.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// GET /meals
func (mc *MealController) List(c *gin.Context) {
	userID := c.GetUint("userID")
	meals, err := mc.mealSvc.ListMeals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GET /meals/:id
func (mc *MealController) Get(c *gin.Context) {
	userID := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	meal, err := mc.mealSvc.GetMeal(userID, uint(mealID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

// PUT /meals/:id
func (mc *MealController) Update(c *gin.Context) {
	userID := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	meal, err := mc.mealSvc.UpdateMeal(c.Request.Context(), userID, uint(mealID), req.Type, req.AteAt, req.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DELETE /meals/:id
func (mc *MealController) Delete(c *gin.Context) {
	userID := c.GetUint("userID")
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	if err := mc.mealSvc.DeleteMeal(userID, uint(mealID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
