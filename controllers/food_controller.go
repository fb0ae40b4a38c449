package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	foodSvc       *services.FoodService
	correctionSvc *services.CorrectionService
}

func NewFoodController(foodSvc *services.FoodService, correctionSvc *services.CorrectionService) *FoodController {
	return &FoodController{foodSvc: foodSvc, correctionSvc: correctionSvc}
}

// GET /food/resolve?q=apple&ai=false
func (fc *FoodController) Resolve(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	aiDetected := c.Query("ai") == "true"

	rec, err := fc.foodSvc.Resolve(c.Request.Context(), q, aiDetected)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		// Normal outcome; the client offers manual entry.
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "food": rec})
}

// POST /food/recognize  { "image_base64": "data:…" }
func (fc *FoodController) Recognize(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	rec, label, err := fc.foodSvc.Recognize(c.Request.Context(), req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"found": false, "detected_label": label})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "detected_label": label, "food": rec})
}

// GET /food/popular?limit=10
func (fc *FoodController) Popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	recs, err := fc.foodSvc.Popular(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// POST /food/correct
// { "detected_name": "chiken", "corrected_name": "Chicken Breast, Grilled", "nutrition": {…} }
func (fc *FoodController) Correct(c *gin.Context) {
	var req struct {
		DetectedName  string                  `json:"detected_name" binding:"required"`
		CorrectedName string                  `json:"corrected_name" binding:"required"`
		Nutrition     services.NutritionFacts `json:"nutrition" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	rec, err := fc.correctionSvc.Learn(req.DetectedName, req.CorrectedName, req.Nutrition)
	if err != nil {
		if errors.Is(err, services.ErrImplausible) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "nutrition values are implausible"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /food/manual  { "name": …, "nutrition": {…} }
func (fc *FoodController) Manual(c *gin.Context) {
	var req struct {
		Name      string                  `json:"name" binding:"required"`
		Nutrition services.NutritionFacts `json:"nutrition" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	userID := c.GetUint("userID")
	rec, err := fc.foodSvc.ManualEntry(userID, req.Name, req.Nutrition)
	if err != nil {
		if errors.Is(err, services.ErrImplausible) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "nutrition values are implausible"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}
