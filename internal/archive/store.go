package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"grocery-list/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

var ErrNotFound = errors.New("shopping list not found")

type Store struct {
	es    *elasticsearch.Client
	index string
}

func NewStore(es *elasticsearch.Client, index string) *Store {
	return &Store{es: es, index: index}
}

// EnsureIndex creates the order index with its mapping when it does not
// exist yet. Safe to call on every startup.
func (s *Store) EnsureIndex(ctx context.Context) error {
	res, err := s.es.Indices.Exists([]string{s.index},
		s.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	created, err := s.es.Indices.Create(s.index,
		s.es.Indices.Create.WithContext(ctx),
		s.es.Indices.Create.WithBody(strings.NewReader(indexMapping)))
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer created.Body.Close()

	if created.IsError() {
		return fmt.Errorf("failed to create index: %s", created.String())
	}

	return nil
}

// Save indexes an order snapshot. A missing id becomes a millisecond
// timestamp; an existing id overwrites the stored document wholesale.
// The write refreshes the index so the snapshot is searchable immediately.
func (s *Store) Save(ctx context.Context, order *models.Order) (string, string, error) {
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	if order.ID == "" {
		order.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}

	body, err := json.Marshal(order)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode order: %w", err)
	}

	res, err := s.es.Index(s.index, bytes.NewReader(body),
		s.es.Index.WithDocumentID(order.ID),
		s.es.Index.WithRefresh("true"),
		s.es.Index.WithContext(ctx))
	if err != nil {
		return "", "", fmt.Errorf("failed to index order: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", "", fmt.Errorf("failed to index order: %s", res.String())
	}

	var indexed struct {
		ID     string `json:"_id"`
		Result string `json:"result"`
	}
	if err := json.NewDecoder(res.Body).Decode(&indexed); err != nil {
		return "", "", fmt.Errorf("failed to decode index response: %w", err)
	}

	return indexed.ID, indexed.Result, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Order, error) {
	res, err := s.es.Get(s.index, id, s.es.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("failed to get order: %s", res.String())
	}

	var doc struct {
		ID     string       `json:"_id"`
		Source models.Order `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}

	doc.Source.ID = doc.ID
	return &doc.Source, nil
}

// ByUser returns all of a user's snapshots, most recently updated first.
func (s *Store) ByUser(ctx context.Context, userID string) ([]models.Order, error) {
	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"userId": userID},
		},
		"sort": []map[string]any{
			{"updatedAt": map[string]any{"order": "desc"}},
		},
	}

	result, err := s.search(ctx, query)
	if err != nil {
		return nil, err
	}

	return result.orders(), nil
}

// All returns a page of snapshots sorted by order date, newest first,
// along with the total count.
func (s *Store) All(ctx context.Context, size, from int) (int, []models.Order, error) {
	query := map[string]any{
		"query": map[string]any{"match_all": map[string]any{}},
		"sort": []map[string]any{
			{"orderDate": map[string]any{"order": "desc"}},
		},
		"size": size,
		"from": from,
	}

	result, err := s.search(ctx, query)
	if err != nil {
		return 0, nil, err
	}

	return result.Hits.Total.Value, result.orders(), nil
}

func (s *Store) Delete(ctx context.Context, id string) (string, error) {
	res, err := s.es.Delete(s.index, id,
		s.es.Delete.WithRefresh("true"),
		s.es.Delete.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to delete order: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if res.IsError() {
		return "", fmt.Errorf("failed to delete order: %s", res.String())
	}

	var deleted struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(res.Body).Decode(&deleted); err != nil {
		return "", fmt.Errorf("failed to decode delete response: %w", err)
	}

	return deleted.Result, nil
}

// Health reports the cluster health status string.
func (s *Store) Health(ctx context.Context) (string, error) {
	res, err := s.es.Cluster.Health(s.es.Cluster.Health.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to check cluster health: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", fmt.Errorf("failed to check cluster health: %s", res.String())
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(res.Body).Decode(&health); err != nil {
		return "", fmt.Errorf("failed to decode cluster health: %w", err)
	}

	return health.Status, nil
}

type searchResult struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string       `json:"_id"`
			Source models.Order `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (r *searchResult) orders() []models.Order {
	orders := make([]models.Order, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		order := hit.Source
		order.ID = hit.ID
		orders = append(orders, order)
	}
	return orders
}

func (s *Store) search(ctx context.Context, query map[string]any) (*searchResult, error) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(query); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(&body),
		s.es.Search.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}
	defer res.Body.Close()

	// A missing index just means nothing has been archived yet.
	if res.StatusCode == http.StatusNotFound {
		return &searchResult{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("failed to search orders: %s", res.String())
	}

	var result searchResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &result, nil
}
