package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Events   EventsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver     string
	Connection string
}

type AuthConfig struct {
	JWTSecret string
}

type CacheConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	// Cluster enables cross-instance invalidation over Redis pub/sub.
	Cluster             bool
	InvalidationChannel string
}

type EventsConfig struct {
	Topic      string
	StreamName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/knotpad.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Cache: CacheConfig{
			TTL:                 getEnvAsDuration("CACHE_TTL", time.Hour),
			CleanupInterval:     getEnvAsDuration("CACHE_CLEANUP_INTERVAL", 10*time.Minute),
			Cluster:             getEnvAsBool("CACHE_CLUSTER_INVALIDATION", false),
			InvalidationChannel: getEnv("CACHE_INVALIDATION_CHANNEL", "knotpad:cache:invalidate"),
		},
		Events: EventsConfig{
			Topic:      getEnv("CHANGE_EVENTS_TOPIC", "knotpad.changes"),
			StreamName: getEnv("NATS_STREAM_NAME", "KNOTPAD"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "1h") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds := getEnvAsInt(key, -1); seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	log.Printf("Invalid duration value for %s, defaulting to %s", key, fallback)
	return fallback
}
