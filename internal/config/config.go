package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port         string
	DatabasePath string
	ImagesDir    string
	ResourcesDir string
	Env          string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by user) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabasePath = getEnv("DATABASE_PATH", "urban_gear.db")
	cfg.ImagesDir = getEnv("IMAGES_DIR", "item_images")
	cfg.ResourcesDir = getEnv("RESOURCES_DIR", "resources")
	cfg.Env = getEnv("APP_ENV", "development")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
