package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Document store backends.
const (
	StoreMySQL         = "mysql"
	StoreElasticsearch = "elasticsearch"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	LogLevel    string
	BodyLimit   string
	SwaggerHost string

	AdminEmail    string
	AdminPassword string
	JWTSecret     string
	SessionTTL    time.Duration

	RedisAddr string
	RedisDB   int
	RedisPass string

	DocumentStore string
	MySQLDSN      string
	ES            ElasticsearchConfig

	ObjectStore ObjectStoreConfig
}

// ElasticsearchConfig configures the Elasticsearch document store.
type ElasticsearchConfig struct {
	Addresses []string
	Index     string
	Username  string
	Password  string
}

// ObjectStoreConfig configures the S3-compatible bucket holding cover images.
type ObjectStoreConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	env := getEnv("ENV", "local")
	loadDotEnv(env)

	return &Config{
		Env:         env,
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BodyLimit:   getEnv("BODY_LIMIT", "10M"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@easyfindshub.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 12*time.Hour),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		DocumentStore: strings.ToLower(getEnv("DOCUMENT_STORE", StoreMySQL)),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/cms?charset=utf8mb4&parseTime=True&loc=Local"),
		ES: ElasticsearchConfig{
			Addresses: splitList(getEnv("ES_ADDRESSES", "http://localhost:9200")),
			Index:     getEnv("ES_INDEX", "articles"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		},

		ObjectStore: ObjectStoreConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("MINIO_BUCKET", "easyfindshub"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: os.Getenv("OBJECT_PUBLIC_BASE_URL"),
		},
	}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadDotEnv reads ENV_PATH (default .env). A missing file only matters locally.
func loadDotEnv(env string) {
	path := getEnv("ENV_PATH", ".env")
	if err := godotenv.Load(path); err != nil {
		if env == "local" {
			slog.Debug("no .env file loaded", "path", path, "error", err)
		}
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
