package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grocery-list/internal/archive"
	"grocery-list/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	saved  []models.Order
	orders map[string]models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[string]models.Order{}}
}

func (f *fakeOrderStore) Save(_ context.Context, order *models.Order) (string, string, error) {
	if order.ID == "" {
		order.ID = "generated-id"
	}
	result := "created"
	if _, ok := f.orders[order.ID]; ok {
		result = "updated"
	}
	f.saved = append(f.saved, *order)
	f.orders[order.ID] = *order
	return order.ID, result, nil
}

func (f *fakeOrderStore) Get(_ context.Context, id string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, archive.ErrNotFound
	}
	return &order, nil
}

func (f *fakeOrderStore) ByUser(_ context.Context, userID string) ([]models.Order, error) {
	orders := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakeOrderStore) All(context.Context, int, int) (int, []models.Order, error) {
	orders := []models.Order{}
	for _, o := range f.orders {
		orders = append(orders, o)
	}
	return len(orders), orders, nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id string) (string, error) {
	if _, ok := f.orders[id]; !ok {
		return "", archive.ErrNotFound
	}
	delete(f.orders, id)
	return "deleted", nil
}

func (f *fakeOrderStore) Health(context.Context) (string, error) { return "green", nil }

func newOrderRouter(store *fakeOrderStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOrderHandler(store, "test-user", slog.Default())

	router := gin.New()
	router.PUT("/api/shopping-lists", h.SaveOrder)
	router.GET("/api/shopping-lists", h.GetAllOrders)
	router.GET("/api/shopping-lists/:id", h.GetOrder)
	router.GET("/api/shopping-lists/user/:userId", h.GetUserOrders)
	router.DELETE("/api/shopping-lists/:id", h.DeleteOrder)
	return router
}

const validOrderBody = `{
	"shoppingList": [{
		"categoryId": 1,
		"categoryName": "Dairy",
		"products": [{"id": 2, "name": "Milk", "quantity": 1}]
	}],
	"userDetails": {
		"fullName": "Israel Israeli",
		"address": "1 Herzl St, Tel Aviv",
		"email": "israel@example.com"
	},
	"orderDate": "2024-03-01T12:00:00Z"
}`

func TestSaveOrder_Success(t *testing.T) {
	store := newFakeOrderStore()
	router := newOrderRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/shopping-lists", strings.NewReader(validOrderBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success": true, "id": "generated-id", "result": "created"}`, w.Body.String())

	require.Len(t, store.saved, 1)
	assert.Equal(t, "test-user", store.saved[0].UserID)
}

func TestSaveOrder_InvalidEmailRejectedBeforeWrite(t *testing.T) {
	store := newFakeOrderStore()
	router := newOrderRouter(store)

	body := strings.Replace(validOrderBody, "israel@example.com", "not-an-email", 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/shopping-lists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.saved)
}

func TestSaveOrder_MissingContactFields(t *testing.T) {
	store := newFakeOrderStore()
	router := newOrderRouter(store)

	body := strings.Replace(validOrderBody, "Israel Israeli", "", 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/shopping-lists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.saved)
}

func TestGetOrder_SnapshotUnchangedByResubmission(t *testing.T) {
	store := newFakeOrderStore()
	router := newOrderRouter(store)

	body := strings.Replace(validOrderBody, `"shoppingList"`, `"id": "order-1", "shoppingList"`, 1)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/shopping-lists", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/shopping-lists/order-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fullName":"Israel Israeli"`)
	assert.Contains(t, w.Body.String(), `"quantity":1`)
}

func TestGetOrder_NotFound(t *testing.T) {
	router := newOrderRouter(newFakeOrderStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/shopping-lists/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrder(t *testing.T) {
	store := newFakeOrderStore()
	store.orders["order-1"] = models.Order{ID: "order-1"}
	router := newOrderRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/shopping-lists/order-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "result": "deleted"}`, w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/shopping-lists/order-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllOrders_PaginationDefaults(t *testing.T) {
	store := newFakeOrderStore()
	store.orders["a"] = models.Order{ID: "a"}
	router := newOrderRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/shopping-lists?size=bogus&from=-3", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"size":10`)
	assert.Contains(t, w.Body.String(), `"from":0`)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestGetUserOrders(t *testing.T) {
	store := newFakeOrderStore()
	store.orders["a"] = models.Order{ID: "a", UserID: "user-1"}
	store.orders["b"] = models.Order{ID: "b", UserID: "user-2"}
	router := newOrderRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/shopping-lists/user/user-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"a"`)
	assert.NotContains(t, w.Body.String(), `"id":"b"`)
}
