package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grocery-list/internal/list"
	"grocery-list/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listStore is a minimal in-memory list.Store for handler tests. One user,
// one list at most.
type listStore struct {
	list     *models.ShoppingList
	items    map[int]int
	order    []int
	products map[int]models.ProductView
}

func newListStore() *listStore {
	return &listStore{
		items: map[int]int{},
		products: map[int]models.ProductView{
			1: {ID: 1, Name: "Cottage cheese", CategoryID: 1, CategoryName: "Dairy"},
			2: {ID: 2, Name: "Milk", CategoryID: 1, CategoryName: "Dairy"},
		},
	}
}

func (s *listStore) LatestList(context.Context, string) (*models.ShoppingList, error) {
	if s.list == nil {
		return nil, nil
	}
	copied := *s.list
	return &copied, nil
}

func (s *listStore) CreateList(_ context.Context, userID string) (*models.ShoppingList, error) {
	s.list = &models.ShoppingList{ID: 1, UserID: userID}
	return s.list, nil
}

func (s *listStore) ListEntries(context.Context, int) ([]models.ListEntry, error) {
	var entries []models.ListEntry
	for _, pid := range s.order {
		qty, ok := s.items[pid]
		if !ok {
			continue
		}
		p := s.products[pid]
		entries = append(entries, models.ListEntry{
			ProductID: pid, ProductName: p.Name,
			CategoryID: p.CategoryID, CategoryName: p.CategoryName,
			Quantity: qty,
		})
	}
	return entries, nil
}

func (s *listStore) MissingProducts(_ context.Context, ids []int) ([]int, error) {
	var missing []int
	for _, id := range ids {
		if _, ok := s.products[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (s *listStore) CategoryProducts(_ context.Context, categoryID int) ([]models.ProductView, error) {
	var products []models.ProductView
	for id := 1; id <= len(s.products); id++ {
		if p, ok := s.products[id]; ok && p.CategoryID == categoryID {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *listStore) UpsertItem(_ context.Context, _, productID, quantity int) error {
	if _, ok := s.items[productID]; !ok {
		s.order = append(s.order, productID)
	}
	s.items[productID] = quantity
	return nil
}

func (s *listStore) DeleteItem(_ context.Context, _, productID int) error {
	delete(s.items, productID)
	return nil
}

func (s *listStore) TouchList(context.Context, int) error { return nil }

func (s *listStore) InTx(_ context.Context, fn func(list.Store) error) error { return fn(s) }

func newListRouter(store *listStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewShoppingListHandler(list.New(store), "test-user", slog.Default())

	router := gin.New()
	router.GET("/api/shoppinglist", h.GetShoppingList)
	router.POST("/api/shoppinglist", h.AddToShoppingList)
	return router
}

func TestGetShoppingList_EmptyList(t *testing.T) {
	router := newListRouter(newListStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/shoppinglist", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items": []}`, w.Body.String())
}

func TestAddToShoppingList_RoundTrip(t *testing.T) {
	router := newListRouter(newListStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/shoppinglist",
		strings.NewReader(`{"categoryId":1,"products":[{"id":1,"quantity":2},{"id":2,"quantity":0}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": 1,
		"items": [{
			"categoryId": 1,
			"categoryName": "Dairy",
			"products": [{"id": 1, "name": "Cottage cheese", "quantity": 2}]
		}]
	}`, w.Body.String())

	// The next GET sees the same canonical view.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/shoppinglist", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":2`)
}

func TestAddToShoppingList_InvalidBody(t *testing.T) {
	router := newListRouter(newListStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/shoppinglist", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddToShoppingList_NegativeQuantityRejected(t *testing.T) {
	store := newListStore()
	router := newListRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/shoppinglist",
		strings.NewReader(`{"categoryId":1,"products":[{"id":1,"quantity":-1}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, store.list)
}

func TestAddToShoppingList_UnknownProduct(t *testing.T) {
	store := newListStore()
	router := newListRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/shoppinglist",
		strings.NewReader(`{"categoryId":1,"products":[{"id":999,"quantity":1}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown product ids")
	assert.Nil(t, store.list)
}
