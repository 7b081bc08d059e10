package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendHTTP, cfg.GalleryBackend)
	assert.Equal(t, defaultBackendURL, cfg.BackendURL)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 8, cfg.FetchConcurrency)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "naturecards", cfg.MongoDB)
	assert.False(t, cfg.ActivityLog)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":        "s3cret",
		"PORT":              "9000",
		"GALLERY_BACKEND":   "Mongo",
		"MONGO_URI":         "mongodb://localhost:27017",
		"BACKEND_URL":       "http://store.local/",
		"FETCH_CONCURRENCY": "2",
		"ALLOWED_ORIGINS":   "http://a.test, http://b.test,",
		"ACTIVITY_LOG":      "true",
		"SEED_FILE":         "users.json",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, BackendMongo, cfg.GalleryBackend)
	assert.Equal(t, "http://store.local", cfg.BackendURL)
	assert.Equal(t, 2, cfg.FetchConcurrency)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.ActivityLog)
	assert.Equal(t, "users.json", cfg.SeedFile)
}

func TestFromEnvErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":      {},
		"bad backend":         {"JWT_SECRET": "x", "GALLERY_BACKEND": "redis"},
		"mongo without uri":   {"JWT_SECRET": "x", "GALLERY_BACKEND": "mongo"},
		"bad concurrency":     {"JWT_SECRET": "x", "FETCH_CONCURRENCY": "0"},
		"bad timeout":         {"JWT_SECRET": "x", "HTTP_TIMEOUT": "soon"},
		"activity without db": {"JWT_SECRET": "x", "ACTIVITY_LOG": "true"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
