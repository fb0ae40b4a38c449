package routes

import (
	"backend/controllers"
	"backend/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	foodCtrl *controllers.FoodController,
	mealCtrl *controllers.MealController,
	goalCtrl *controllers.DailyGoalController,
) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected food resolution routes
	food := r.Group("/food")
	food.Use(middlewares.AuthMiddleware())
	{
		food.GET("/resolve", foodCtrl.Resolve)
		food.POST("/recognize", foodCtrl.Recognize)
		food.GET("/popular", foodCtrl.Popular)
		food.POST("/correct", foodCtrl.Correct)
		food.POST("/manual", foodCtrl.Manual)
	}

	// Protected meal routes
	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", mealCtrl.Add)
		meals.GET("", mealCtrl.List)
		meals.GET("/:id", mealCtrl.Get)
		meals.PUT("/:id", mealCtrl.Update)
		meals.DELETE("/:id", mealCtrl.Delete)
	}

	// Protected goal routes
	goals := r.Group("/goals")
	goals.Use(middlewares.AuthMiddleware())
	{
		goals.PUT("", goalCtrl.Upsert)
		goals.POST("/calculate", goalCtrl.Calculate)
		goals.GET("/progress", goalCtrl.Progress)
	}

	return r
}
