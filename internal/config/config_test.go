package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("SERVICE_SECRET", "s3cret")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ServiceClientes, cfg.ServiceName)
	assert.Equal(t, "examen2", cfg.MongoDBDatabase)
	assert.Equal(t, 10*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.GeocodeCacheTTL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_UsuariosNeedsVerifyHost(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SERVICE_NAME", ServiceUsuarios)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VERIFY_HOST")

	t.Setenv("VERIFY_HOST", "http://clientes:8080/")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://clientes:8080", cfg.VerifyHost)
}

func TestLoadConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown service", "SERVICE_NAME", "facturas"},
		{"bad timeout", "HTTP_CLIENT_TIMEOUT", "soon"},
		{"bad cache ttl", "GEOCODE_CACHE_TTL", "forever"},
		{"missing secret", "SERVICE_SECRET", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tc.key, tc.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
