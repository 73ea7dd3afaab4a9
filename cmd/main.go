package main

import (
	"log"
	"os"

	"github.com/Aman5012/Food-Nutrition-Analyzer/config"
	"github.com/Aman5012/Food-Nutrition-Analyzer/controllers"
	"github.com/Aman5012/Food-Nutrition-Analyzer/routes"
	"github.com/Aman5012/Food-Nutrition-Analyzer/services"
	"github.com/Aman5012/Food-Nutrition-Analyzer/utils"
)

func main() {
	config.Load()

	classifier, err := buildClassifier()
	if err != nil {
		log.Fatalf("Failed to load classifier: %v", err)
	}

	cache := services.NewFileCache(config.Getenv("NUTRITION_DB_PATH", "data/nutrition_db.json"))
	provider := services.NewEdamamService()
	history := services.NewHistoryService(config.InitDB())

	var archiver services.ImageArchiver
	s3arch, err := utils.NewS3Archiver()
	if err != nil {
		log.Printf("S3 archival disabled: %v", err)
	} else if s3arch != nil {
		archiver = s3arch
	}

	foodSvc := services.NewFoodService(classifier, cache, provider, history, archiver)
	r := routes.SetupRouter(controllers.NewAnalyzeController(foodSvc))

	port := config.Getenv("PORT", "8080")
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func buildClassifier() (services.Classifier, error) {
	if os.Getenv("CLASSIFIER_BACKEND") == "rekognition" {
		return services.NewRekognitionClassifier()
	}
	return services.NewONNXClassifier(
		config.Getenv("CLASS_NAMES_PATH", "data/class_names.json"),
		config.Getenv("MODEL_PATH", "data/food_model.onnx"),
	)
}
