package routes

import (
	"time"

	"github.com/ToXMon/fitagent/config"
	"github.com/ToXMon/fitagent/controllers"
	"github.com/ToXMon/fitagent/middlewares"
	"github.com/ToXMon/fitagent/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          time.Hour,
	}))

	// ErrorHandler wraps everything after it, including the rate limiter, so
	// all classified errors exit through the one mapping boundary.
	r.Use(middlewares.ErrorHandler())
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst).Middleware())

	visionSvc := services.NewVisionService(cfg.VisionModelEndpoint)
	coachingSvc := services.NewCoachingService(cfg.VeniceAIKey)
	chainSvc := services.NewBlockchainService()
	userSvc := services.NewUserService()

	photoCtl := controllers.NewPhotoController(visionSvc)
	coachingCtl := controllers.NewCoachingController(coachingSvc)
	goalCtl := controllers.NewGoalController(chainSvc, userSvc)
	userCtl := controllers.NewUserController(userSvc, chainSvc)

	api := r.Group("/api")
	{
		api.GET("/health", controllers.HealthCheck)
		api.POST("/analyze-photo", photoCtl.AnalyzePhoto)
		api.POST("/coach-meal", coachingCtl.CoachMeal)
		api.GET("/user/profile/:user_id", userCtl.GetUserProfile)
		api.GET("/user/balance/:address", userCtl.GetUserBalance)
		api.POST("/complete-goal", goalCtl.CompleteGoal)
	}

	return r
}
