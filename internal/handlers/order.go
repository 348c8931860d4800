package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"grocery-list/internal/archive"
	"grocery-list/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// OrderStore is the archive contract: write-once snapshots retrievable by
// id, listable by user and as a paginated whole.
type OrderStore interface {
	Save(ctx context.Context, order *models.Order) (id, result string, err error)
	Get(ctx context.Context, id string) (*models.Order, error)
	ByUser(ctx context.Context, userID string) ([]models.Order, error)
	All(ctx context.Context, size, from int) (int, []models.Order, error)
	Delete(ctx context.Context, id string) (string, error)
	Health(ctx context.Context) (string, error)
}

type OrderHandler struct {
	store       OrderStore
	validator   *validator.Validate
	defaultUser string
	log         *slog.Logger
}

func NewOrderHandler(store OrderStore, defaultUser string, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		store:       store,
		validator:   validator.New(),
		defaultUser: defaultUser,
		log:         log,
	}
}

// SaveOrder archives a checkout snapshot. Contact details are validated
// before anything is written; a rejected submission leaves no trace in the
// store.
func (h *OrderHandler) SaveOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shopping list data is required"})
		return
	}

	if err := h.validator.Struct(order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if order.UserID == "" {
		order.UserID = requestUser(c, h.defaultUser)
	}

	id, result, err := h.store.Save(c.Request.Context(), &order)
	if err != nil {
		h.log.Error("failed to save shopping list", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save shopping list"})
		return
	}

	h.log.Info("shopping list archived", "id", id, "userId", order.UserID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      id,
		"result":  result,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")

	order, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shopping list not found"})
			return
		}
		h.log.Error("failed to retrieve shopping list", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shopping list"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID := c.Param("userId")

	orders, err := h.store.ByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("failed to retrieve user shopping lists", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user shopping lists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lists": orders})
}

func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		size = 10
	}
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil || from < 0 {
		from = 0
	}

	total, orders, err := h.store.All(c.Request.Context(), size, from)
	if err != nil {
		h.log.Error("failed to retrieve shopping lists", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shopping lists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": total,
		"from":  from,
		"size":  size,
		"lists": orders,
	})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")

	result, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shopping list not found"})
			return
		}
		h.log.Error("failed to delete shopping list", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shopping list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *OrderHandler) Health(c *gin.Context) {
	status, err := h.store.Health(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "ERROR", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK", "elasticsearch": status})
}
