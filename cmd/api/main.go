package main

import (
	"log"

	"github.com/Daniel-Moraes1/offer-watch/internal/config"
	"github.com/Daniel-Moraes1/offer-watch/internal/database"
	"github.com/Daniel-Moraes1/offer-watch/internal/handlers"
	"github.com/Daniel-Moraes1/offer-watch/internal/logger"
	"github.com/Daniel-Moraes1/offer-watch/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer logg.Sync()

	db, err := database.Connect(cfg.DB.DSN)
	if err != nil {
		logg.Fatal("database connection failed", zap.Error(err))
	}
	logg.Info("database connection established")

	st := store.New(db)
	appHandler := handlers.NewApplicationHandler(st, logg)
	tokenHandler := &handlers.TokenHandler{Secret: cfg.JWT.Secret, TTL: cfg.JWT.TTL}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins()
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/token", tokenHandler.Mint)

		protected := api.Group("", handlers.RequireUser(cfg.JWT.Secret))
		{
			protected.GET("/applications", appHandler.List)
			protected.POST("/applications", appHandler.Upsert)
			protected.DELETE("/applications", appHandler.Delete)
		}
	}

	logg.Info("api server starting", zap.Int("port", cfg.Port))
	if err := r.Run(cfg.ServerAddr()); err != nil {
		logg.Fatal("server failed", zap.Error(err))
	}
}
