package main

import (
	"context"
	"os"

	"grocery-list/internal/api"
	"grocery-list/internal/archive"
	"grocery-list/internal/config"
	"grocery-list/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadArchive()
	log := logging.Setup(cfg.LogLevel)

	es, err := archive.NewClient(cfg.Elasticsearch)
	if err != nil {
		log.Error("failed to create elasticsearch client", "error", err)
		os.Exit(1)
	}

	orders := archive.NewStore(es, cfg.Elasticsearch.Index)

	if err := orders.EnsureIndex(context.Background()); err != nil {
		log.Error("failed to set up elasticsearch index", "error", err)
		os.Exit(1)
	}
	log.Info("elasticsearch index ready", "index", cfg.Elasticsearch.Index)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupArchiveRouter(orders, cfg, log)

	log.Info("server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
