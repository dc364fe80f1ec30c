package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"rentrate/controllers"
	middlewares "rentrate/middleware"
	"rentrate/services"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, provider services.TranslationProvider) {

	authController := controllers.NewAuthController(db)
	reviewController := controllers.NewReviewController(db, redisCli)
	propertyController := controllers.NewPropertyController(db, redisCli)
	photoController := controllers.NewPhotoController(db)
	translationController := controllers.NewTranslationController(db, provider)

	router.GET("/", controllers.Root)

	api := router.Group("/api")
	api.GET("/health", controllers.Health)

	api.POST("/register", authController.Register)
	api.POST("/login", authController.Login)
	api.POST("/logout", authController.Logout)
	api.GET("/profile", middlewares.RequireAuth(), authController.Profile)
	api.DELETE("/profile", middlewares.RequireAuth(), authController.DeleteProfile)

	api.GET("/reviews", reviewController.GetReviews)
	api.POST("/reviews", middlewares.OptionalAuth(), reviewController.CreateReview)
	api.GET("/reviews/:id", reviewController.GetReview)
	api.PUT("/reviews/:id", middlewares.RequireAuth(), reviewController.UpdateReview)
	api.DELETE("/reviews/:id", middlewares.RequireAuth(), reviewController.DeleteReview)
	api.GET("/my-reviews", middlewares.RequireAuth(), reviewController.MyReviews)

	api.GET("/properties", propertyController.GetProperties)
	api.GET("/properties/:id", propertyController.GetProperty)

	api.GET("/photos/:id", photoController.GetPhoto)

	api.POST("/translate", translationController.Translate)
	api.POST("/detect-language", translationController.DetectLanguage)
}
