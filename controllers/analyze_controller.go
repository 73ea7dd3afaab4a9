package controllers

import (
	"io"
	"log"
	"net/http"

	"github.com/Aman5012/Food-Nutrition-Analyzer/services"

	"github.com/gin-gonic/gin"
)

// AnalyzeController serves the image analysis endpoint.
type AnalyzeController struct {
	foodSvc *services.FoodService
}

func NewAnalyzeController(foodSvc *services.FoodService) *AnalyzeController {
	return &AnalyzeController{foodSvc: foodSvc}
}

// POST /api/analyze with a multipart "image" field
func (ctl *AnalyzeController) Analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Could not open uploaded image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze image"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Could not read uploaded image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze image"})
		return
	}

	result, err := ctl.foodSvc.Analyze(imageData)
	if err != nil {
		// Diagnostic detail stays in the server log.
		log.Printf("An error occurred: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze image"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GET /health
func (ctl *AnalyzeController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
