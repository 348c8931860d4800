package api

import (
	"log/slog"

	"grocery-list/internal/config"
	"grocery-list/internal/database"
	"grocery-list/internal/handlers"
	"grocery-list/internal/list"
	"grocery-list/internal/middleware"
	"grocery-list/internal/store"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the catalog/shopping-list service.
func SetupRouter(db *database.DB, pg *store.Postgres, engine *list.Engine, cfg *config.Config, log *slog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))

	// Custom CORS middleware
	router.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Length, Content-Type, X-User-Id")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	catalogHandler := handlers.NewCatalogHandler(pg, engine, cfg.DefaultUserID, log)
	listHandler := handlers.NewShoppingListHandler(engine, cfg.DefaultUserID, log)
	healthHandler := handlers.NewHealthHandler(db)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Check)

		api.GET("/categories", catalogHandler.GetCategories)
		api.GET("/products/category/:categoryId", catalogHandler.GetProductsByCategory)

		api.GET("/shoppinglist", listHandler.GetShoppingList)
		api.POST("/shoppinglist", listHandler.AddToShoppingList)
	}

	return router
}
