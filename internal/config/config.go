package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-driven settings of the service.
type Config struct {
	Env  string
	Port string

	// Base URL of the remote data store. Empty means the collaborator
	// is not configured and the core flows short-circuit.
	RemoteStoreURL string

	// Optional Redis session store; when empty the in-process store
	// is used.
	RedisURL string

	// Dev remote store backend.
	DatabaseURL string
	UploadDir   string

	JWTSecret string
}

// Load reads the environment (loading .env first when present) and
// applies development defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:            getenv("ENV", "dev"),
		Port:           getenv("PORT", "8080"),
		RemoteStoreURL: os.Getenv("REMOTE_STORE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		JWTSecret:      getenv("JWT_SECRET", "supersecretapikey"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
