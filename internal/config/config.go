package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ServiceUsuarios = "usuarios"
	ServiceClientes = "clientes"
)

type Config struct {
	Port            string
	ServiceName     string
	Environment     string
	LogLevel        string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBDatabase string
	ServiceSecret   string
	VerifyHost      string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	UploadPreset        string

	GeocoderURL       string
	HTTPClientTimeout time.Duration

	// RedisURL enables the geocode cache when set.
	RedisURL        string
	GeocodeCacheTTL time.Duration

	CORSOrigins []string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "8080"),
		ServiceName:     getEnvWithDefault("SERVICE_NAME", ServiceClientes),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase: getEnvWithDefault("MONGODB_DATABASE", "examen2"),
		ServiceSecret:   os.Getenv("SERVICE_SECRET"),
		VerifyHost:      strings.TrimRight(os.Getenv("VERIFY_HOST"), "/"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		UploadPreset:        os.Getenv("UPLOAD_PRESET_SIGNED"),

		GeocoderURL: getEnvWithDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org/search"),
		RedisURL:    os.Getenv("REDIS_URL"),
		CORSOrigins: splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
	}

	timeout, err := time.ParseDuration(getEnvWithDefault("HTTP_CLIENT_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("HTTP_CLIENT_TIMEOUT is invalid: %w", err)
	}
	cfg.HTTPClientTimeout = timeout

	cacheTTL, err := time.ParseDuration(getEnvWithDefault("GEOCODE_CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("GEOCODE_CACHE_TTL is invalid: %w", err)
	}
	cfg.GeocodeCacheTTL = cacheTTL

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the options each service needs.
func (c *Config) Validate() error {
	if c.ServiceName != ServiceUsuarios && c.ServiceName != ServiceClientes {
		return fmt.Errorf("SERVICE_NAME must be %q or %q", ServiceUsuarios, ServiceClientes)
	}
	if c.MongoDBURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.ServiceSecret == "" {
		return fmt.Errorf("SERVICE_SECRET is required")
	}
	if c.HTTPClientTimeout <= 0 {
		return fmt.Errorf("HTTP_CLIENT_TIMEOUT must be positive")
	}

	switch c.ServiceName {
	case ServiceUsuarios:
		if c.VerifyHost == "" {
			return fmt.Errorf("VERIFY_HOST is required")
		}
	case ServiceClientes:
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			return fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
		}
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
