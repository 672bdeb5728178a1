package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup and handed to constructors explicitly.
type Config struct {
	Port    string
	GinMode string

	MongoURI         string
	MongoDB          string
	MongoForceTLS    bool
	MongoInsecureTLS bool

	PostgresURI string
	AutoMigrate bool

	RedisAddr string

	JWTSecret      string
	JWTTTL         time.Duration
	GoogleClientID string

	GCPProject  string
	GCPLocation string
	GeminiModel string
	GCSBucket   string

	ChromePath string
	PDFTimeout time.Duration

	ResetTokenTTL time.Duration
	FrontendURL   string
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	c := Config{
		Port:    env("PORT", "8080"),
		GinMode: env("GIN_MODE", ""),

		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          env("MONGO_DB", "resumecraft"),
		MongoForceTLS:    envBool("MONGO_FORCE_TLS_CONFIG") || os.Getenv("GO_ENV") == "development",
		MongoInsecureTLS: envBool("MONGO_INSECURE_TLS"),

		PostgresURI: os.Getenv("POSTGRES_URI"),
		AutoMigrate: envBool("DB_AUTO_MIGRATE"),

		RedisAddr: firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTTTL:         envDuration("JWT_TTL", 24*time.Hour),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		GCPProject:  firstEnv("GCP_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"),
		GCPLocation: env("GCP_LOCATION", "us-central1"),
		GeminiModel: os.Getenv("GEMINI_MODEL"),
		GCSBucket:   os.Getenv("GCS_BUCKET"),

		ChromePath: os.Getenv("CHROME_PATH"),
		PDFTimeout: envDuration("PDF_TIMEOUT", 60*time.Second),

		ResetTokenTTL: envDuration("RESET_TOKEN_TTL", time.Hour),
		FrontendURL:   strings.TrimRight(env("FRONTEND_URL", "http://localhost:3000"), "/"),
	}

	if c.JWTSecret == "" {
		return c, errors.New("JWT_SECRET environment variable is not set")
	}
	return c, nil
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
