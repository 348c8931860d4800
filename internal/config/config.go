package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment   string
	Port          string
	LogLevel      string
	DefaultUserID string
	Database      DatabaseConfig
	Elasticsearch ElasticsearchConfig
	CORS          CORSConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

type ElasticsearchConfig struct {
	Node     string
	Username string
	Password string
	CloudID  string
	APIKey   string
	Index    string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration for the catalog/shopping-list API service.
func Load() *Config {
	loadDotenv()

	return &Config{
		Environment:   getEnv("NODE_ENV", "development"),
		Port:          getEnv("PORT", "3001"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DefaultUserID: getEnv("DEFAULT_USER_ID", "test-user"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "postgres"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "grocery_list"),
			User:     getEnv("DB_USER", "grocery_user"),
			Password: getEnv("DB_PASSWORD", "grocery_password"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				getEnv("FRONTEND_URL", "http://localhost:3000"),
				"http://localhost:3000",
			},
		},
	}
}

// LoadArchive reads configuration for the order-archive service.
func LoadArchive() *Config {
	loadDotenv()

	return &Config{
		Environment:   getEnv("NODE_ENV", "development"),
		Port:          getEnv("PORT", "3002"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DefaultUserID: getEnv("DEFAULT_USER_ID", "test-user"),
		Elasticsearch: ElasticsearchConfig{
			Node:     getEnv("ELASTICSEARCH_NODE", "http://localhost:9200"),
			Username: getEnv("ELASTICSEARCH_USERNAME", ""),
			Password: getEnv("ELASTICSEARCH_PASSWORD", ""),
			CloudID:  getEnv("ELASTICSEARCH_CLOUD_ID", ""),
			APIKey:   getEnv("ELASTICSEARCH_API_KEY", ""),
			Index:    getEnv("ELASTICSEARCH_INDEX", "shopping-lists"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				getEnv("FRONTEND_URL", "http://localhost:3000"),
			},
		},
	}
}

func loadDotenv() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
