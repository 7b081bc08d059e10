package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Gallery backends.
const (
	BackendHTTP   = "http"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

const defaultBackendURL = "https://nature-cards-e3f71dcee8d3.herokuapp.com"

// Config holds everything the server reads from the environment.
type Config struct {
	Port             string
	JWTSecret        string
	TokenExpiry      time.Duration
	GalleryBackend   string
	BackendURL       string
	HTTPTimeout      time.Duration
	MongoURI         string
	MongoDB          string
	SeedFile         string
	FetchConcurrency int
	AllowedOrigins   []string
	LogLevel         string
	ActivityLog      bool
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:           get("PORT", "8080"),
		JWTSecret:      get("JWT_SECRET", ""),
		GalleryBackend: strings.ToLower(get("GALLERY_BACKEND", BackendHTTP)),
		BackendURL:     strings.TrimRight(get("BACKEND_URL", defaultBackendURL), "/"),
		MongoURI:       get("MONGO_URI", ""),
		MongoDB:        get("MONGO_DB", "naturecards"),
		SeedFile:       get("SEED_FILE", ""),
		LogLevel:       get("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	var err error
	if cfg.TokenExpiry, err = time.ParseDuration(get("TOKEN_EXPIRY", "24h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRY: %v", err)
	}
	if cfg.HTTPTimeout, err = time.ParseDuration(get("HTTP_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %v", err)
	}
	if cfg.FetchConcurrency, err = strconv.Atoi(get("FETCH_CONCURRENCY", "8")); err != nil || cfg.FetchConcurrency < 1 {
		return nil, fmt.Errorf("invalid FETCH_CONCURRENCY: %q", getenv("FETCH_CONCURRENCY"))
	}
	if cfg.ActivityLog, err = strconv.ParseBool(get("ACTIVITY_LOG", "false")); err != nil {
		return nil, fmt.Errorf("invalid ACTIVITY_LOG: %v", err)
	}

	for _, origin := range strings.Split(get("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	switch cfg.GalleryBackend {
	case BackendHTTP, BackendMemory:
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required when GALLERY_BACKEND=mongo")
		}
	default:
		return nil, fmt.Errorf("unknown GALLERY_BACKEND %q", cfg.GalleryBackend)
	}

	if cfg.ActivityLog && cfg.MongoURI == "" {
		return nil, fmt.Errorf("ACTIVITY_LOG requires MONGO_URI")
	}

	return cfg, nil
}
