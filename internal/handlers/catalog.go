package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"grocery-list/internal/list"
	"grocery-list/internal/models"

	"github.com/gin-gonic/gin"
)

type CatalogStore interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

type CatalogHandler struct {
	store       CatalogStore
	engine      *list.Engine
	defaultUser string
	log         *slog.Logger
}

func NewCatalogHandler(store CatalogStore, engine *list.Engine, defaultUser string, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		store:       store,
		engine:      engine,
		defaultUser: defaultUser,
		log:         log,
	}
}

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	h.log.Info("getting all categories")

	categories, err := h.store.Categories(c.Request.Context())
	if err != nil {
		h.log.Error("failed to fetch categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetProductsByCategory lists a category's products with each product's
// quantity on the caller's active shopping list (0 when not listed).
func (h *CatalogHandler) GetProductsByCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	userID := requestUser(c, h.defaultUser)
	h.log.Info("getting products for category", "categoryId", categoryID, "userId", userID)

	products, err := h.engine.ProductsForCategory(c.Request.Context(), userID, categoryID)
	if err != nil {
		h.log.Error("failed to fetch products", "categoryId", categoryID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}
