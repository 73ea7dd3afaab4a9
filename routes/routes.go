package routes

import (
	"github.com/Aman5012/Food-Nutrition-Analyzer/controllers"
	"github.com/Aman5012/Food-Nutrition-Analyzer/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter(analyze *controllers.AnalyzeController) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	r.GET("/health", analyze.Health)

	api := r.Group("/api")
	{
		api.POST("/analyze", analyze.Analyze)
	}

	return r
}
