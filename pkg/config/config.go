package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                    string
	Env                     string
	LogLevel                string
	UpstreamBaseURL         string
	UpstreamTimeout         time.Duration
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	FirebaseCredentialsPath string
	MetricsPort             string
	SnowflakeNode           int64
	WorkspaceTTL            time.Duration
	WorkspaceLimit          int
}

// Load reads the process environment, after merging a .env file when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		UpstreamBaseURL:         getEnv("UPSTREAM_BASE_URL", "http://localhost:8081/api"),
		UpstreamTimeout:         getDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "travelmatch"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		SnowflakeNode:           int64(getInt("SNOWFLAKE_NODE", 1)),
		WorkspaceTTL:            getDuration("WORKSPACE_TTL", 30*time.Minute),
		WorkspaceLimit:          getInt("WORKSPACE_LIMIT", 10000),
	}
}

// IsDevelopment reports whether the gateway runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Int("default", defaultValue).Msg("Invalid integer in environment")
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Dur("default", defaultValue).Msg("Invalid duration in environment")
		return defaultValue
	}
	return d
}
