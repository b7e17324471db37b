package config

import (
	"errors"
	"os"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	GoogleAPIKey   string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string
	MinioUseSSL    bool
}

// Load reads configuration from the environment. The signing secret and the
// database URI have no usable fallback, so their absence is an error and the
// caller is expected to refuse to start.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		MongoURI:       getenv("MONGODB_URI", ""),
		MongoDB:        getenv("MONGO_DB", "pixelforge"),
		JWTSecret:      getenv("JWT_SECRET", ""),
		GoogleAPIKey:   getenv("GOOGLE_API_KEY", ""),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "generated-images"),
		MinioPublicURL: getenv("MINIO_PUBLIC_URL", ""),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
