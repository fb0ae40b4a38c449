package main

import (
	"log"

	"backend/config"
	"backend/controllers"
	"backend/routes"
	"backend/services"
)

func main() {
	config.InitDB()

	usda, err := services.NewUSDAService()
	if err != nil {
		log.Fatalf("external catalog misconfigured: %v", err)
	}
	off := services.NewOpenFoodFactsService()

	// Photo recognition is optional; without AWS credentials the resolve
	// and manual-entry paths still work.
	rek, err := services.NewRekognitionService()
	if err != nil {
		log.Printf("image recognition disabled: %v", err)
		rek = nil
	}

	catalog := services.NewCatalogService(config.DB)
	resolver := services.NewResolverService(catalog, []services.FoodCatalog{usda, off})
	foodSvc := services.NewFoodService(resolver, catalog, rek)
	correctionSvc := services.NewCorrectionService(catalog, resolver)
	mealSvc := services.NewMealService(config.DB, foodSvc)
	goalSvc := services.NewDailyGoalService(config.DB, mealSvc)

	r := routes.SetupRouter(
		controllers.NewFoodController(foodSvc, correctionSvc),
		controllers.NewMealController(mealSvc),
		controllers.NewDailyGoalController(goalSvc),
	)
	r.Run(":8080")
}
