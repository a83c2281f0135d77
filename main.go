package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SeanMWG/inventory-app/cmd"
	"github.com/SeanMWG/inventory-app/internal/config"
	"github.com/SeanMWG/inventory-app/internal/container"
	"github.com/SeanMWG/inventory-app/internal/database"
	"github.com/SeanMWG/inventory-app/internal/logger"
	"github.com/SeanMWG/inventory-app/internal/middleware"
	"github.com/SeanMWG/inventory-app/internal/routes"
)

func main() {
	// Runs maintenance subcommands (migrate, backfill-locations) and
	// exits; a bare invocation continues into the server below.
	cmd.Execute()

	log := logger.NewLogger()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	log.Info("connected to the database")

	appContainer := container.NewAppContainer(db, cfg)

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.TimeoutMiddleware(cfg.RequestTimeout))

	routes.Register(router, appContainer, cfg)

	log.Info("starting server", zap.String("host", cfg.AppHost))
	if err := router.Run(cfg.AppHost); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
