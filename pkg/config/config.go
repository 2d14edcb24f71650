package config

import (
	"os"
	"strings"
)

type Config struct {
	Port            string
	Env             string
	MongoURI        string
	MongoDatabase   string
	PostgresConnStr string
	SessionSecret   string
	AdminUsers      []string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DB", "wset"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		SessionSecret:   getEnv("SESSION_SECRET", "somesecrettokenhere"),
		AdminUsers:      splitList(getEnv("ADMIN_USERS", "")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
