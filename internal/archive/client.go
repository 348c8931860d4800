// Package archive persists order snapshots in Elasticsearch and serves
// retrieval and search over them.
package archive

import (
	"grocery-list/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewClient builds an Elasticsearch client from the environment config.
// A cloud id takes precedence over a node address; basic auth and API-key
// auth are both supported.
func NewClient(cfg config.ElasticsearchConfig) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{}

	if cfg.CloudID != "" {
		esCfg.CloudID = cfg.CloudID
	} else {
		esCfg.Addresses = []string{cfg.Node}
	}

	if cfg.Username != "" && cfg.Password != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}
	if cfg.APIKey != "" {
		esCfg.APIKey = cfg.APIKey
	}

	return elasticsearch.NewClient(esCfg)
}

// indexMapping is the schema for the order index. Text fields use a
// lowercase-only analyzer so the Hebrew sample data tokenizes cleanly;
// userId and email are keywords for exact-match lookups.
const indexMapping = `{
  "settings": {
    "analysis": {
      "analyzer": {
        "hebrew_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "userId": { "type": "keyword" },
      "shoppingList": {
        "type": "nested",
        "properties": {
          "categoryId": { "type": "integer" },
          "categoryName": { "type": "text", "analyzer": "hebrew_analyzer" },
          "products": {
            "type": "nested",
            "properties": {
              "id": { "type": "integer" },
              "name": { "type": "text", "analyzer": "hebrew_analyzer" },
              "quantity": { "type": "integer" }
            }
          }
        }
      },
      "userDetails": {
        "properties": {
          "fullName": {
            "type": "text",
            "analyzer": "hebrew_analyzer",
            "fields": { "keyword": { "type": "keyword" } }
          },
          "address": { "type": "text", "analyzer": "hebrew_analyzer" },
          "email": { "type": "keyword" }
        }
      },
      "orderDate": { "type": "date" },
      "createdAt": { "type": "date" },
      "updatedAt": { "type": "date" }
    }
  }
}`
