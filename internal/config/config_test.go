package config

import "testing"

func TestLoadFromEnvRequiresSecret(t *testing.T) {
	t.Setenv(EnvJWTSecret, "")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error when JWT_SECRET is unset")
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvJWTSecret, "s3cret")
	t.Setenv(EnvPort, "")
	t.Setenv(EnvMongoURI, "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Expected default port %s, got %s", DefaultPort, cfg.Port)
	}
	if cfg.MongoURI != "" {
		t.Errorf("Expected empty Mongo URI, got %s", cfg.MongoURI)
	}
	if cfg.MongoDatabase != DefaultMongoDatabase {
		t.Errorf("Expected default database, got %s", cfg.MongoDatabase)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvJWTSecret, "s3cret")
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvMongoURI, "mongodb://localhost:27017")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("Unexpected Mongo URI: %s", cfg.MongoURI)
	}
}
