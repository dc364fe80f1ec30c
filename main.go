package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rentrate/config"
	_ "rentrate/docs"
	middlewares "rentrate/middleware"
	"rentrate/routes"
	"rentrate/services"
)

// @title RentRate API
// @version 1.0
// @description Property and rental review aggregation service.
// @BasePath /api
func main() {
	if err := config.LoadEnv(); err != nil {
		panic("Failed to load .env file: " + err.Error())
	}

	if err := config.InitLogger(); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer config.Logger.Sync()

	if err := config.ConnectDB(); err != nil {
		config.Logger.Fatalw("Failed to connect to database", "error", err)
	}
	if err := config.AutoMigrate(); err != nil {
		config.Logger.Fatalw("Failed to migrate database", "error", err)
	}

	redisCli, err := config.ConnectRedis()
	if err != nil {
		// List caching degrades to plain DB reads without Redis.
		config.Logger.Warnw("Redis unavailable, response caching disabled", "error", err)
		redisCli = nil
	}

	provider := services.NewLibreTranslateClient(config.TranslateURL(), config.TranslateAPIKey())

	if config.Env() == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger())
	router.MaxMultipartMemory = 16 << 20

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	routes.SetupRoutes(router, config.DB, redisCli, provider)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + config.ServerPort(),
		Handler: router,
	}

	go func() {
		config.Logger.Infow("Server listening", "port", config.ServerPort())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			config.Logger.Fatalw("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		config.Logger.Fatalw("Server shutdown failed", "error", err)
	}
	config.Logger.Info("Server stopped")
}
