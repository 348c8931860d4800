package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"grocery-list/internal/list"
	"grocery-list/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ShoppingListHandler struct {
	engine      *list.Engine
	validator   *validator.Validate
	defaultUser string
	log         *slog.Logger
}

func NewShoppingListHandler(engine *list.Engine, defaultUser string, log *slog.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{
		engine:      engine,
		validator:   validator.New(),
		defaultUser: defaultUser,
		log:         log,
	}
}

func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	userID := requestUser(c, h.defaultUser)
	h.log.Info("getting shopping list", "userId", userID)

	view, err := h.engine.CurrentList(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("failed to fetch shopping list", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping list"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddToShoppingList applies a batch of quantity edits and returns the full
// grouped view recomputed after the batch. The category id scopes the edit
// on the client side only; the engine keys items by product.
func (h *ShoppingListHandler) AddToShoppingList(c *gin.Context) {
	userID := requestUser(c, h.defaultUser)

	var req models.AddToShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("adding to shopping list", "userId", userID, "categoryId", req.CategoryID)

	view, err := h.engine.ApplyUpdates(c.Request.Context(), userID, req.Products)
	if err != nil {
		var unknown *list.UnknownProductError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": unknown.Error()})
			return
		}
		h.log.Error("failed to update shopping list", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shopping list"})
		return
	}

	c.JSON(http.StatusOK, view)
}
