package main

import (
	"context"
	"os"

	"grocery-list/internal/api"
	"grocery-list/internal/config"
	"grocery-list/internal/database"
	"grocery-list/internal/list"
	"grocery-list/internal/logging"
	"grocery-list/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	log.Info("database migrated")

	pg := store.NewPostgres(db)
	engine := list.New(pg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(db, pg, engine, cfg, log)

	log.Info("server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
