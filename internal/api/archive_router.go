package api

import (
	"log/slog"

	"grocery-list/internal/config"
	"grocery-list/internal/handlers"
	"grocery-list/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupArchiveRouter wires the order-archive service.
func SetupArchiveRouter(orders handlers.OrderStore, cfg *config.Config, log *slog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	corsCfg.AllowMethods = []string{"GET", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-User-Id"}
	router.Use(cors.New(corsCfg))

	orderHandler := handlers.NewOrderHandler(orders, cfg.DefaultUserID, log)

	api := router.Group("/api")
	{
		api.GET("/health", orderHandler.Health)

		lists := api.Group("/shopping-lists")
		{
			lists.PUT("", orderHandler.SaveOrder)
			lists.GET("", orderHandler.GetAllOrders)
			lists.GET("/:id", orderHandler.GetOrder)
			lists.GET("/user/:userId", orderHandler.GetUserOrders)
			lists.DELETE("/:id", orderHandler.DeleteOrder)
		}
	}

	return router
}
