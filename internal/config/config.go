package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	EnvJWTSecret     = "JWT_SECRET"
	EnvPort          = "PORT"
	EnvMongoURI      = "MONGODB_URI"
	EnvMongoDatabase = "MONGODB_DATABASE"

	DefaultPort          = "5000"
	DefaultMongoDatabase = "finlock"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port      string
	JWTSecret string
	// MongoURI, when set, selects the durable MongoDB backend. Empty means
	// the in-memory stores are used and state is lost on restart.
	MongoURI      string
	MongoDatabase string
}

// LoadFromEnv loads and validates configuration from environment variables.
// The signing secret is mandatory: the process must refuse to start without it.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Port:          envOrDefault(EnvPort, DefaultPort),
		JWTSecret:     strings.TrimSpace(os.Getenv(EnvJWTSecret)),
		MongoURI:      strings.TrimSpace(os.Getenv(EnvMongoURI)),
		MongoDatabase: envOrDefault(EnvMongoDatabase, DefaultMongoDatabase),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("invalid %s: must not be empty", EnvJWTSecret)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
