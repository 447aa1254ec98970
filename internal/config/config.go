package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port            string
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string
	SeedOnStart bool

	// Redis
	RedisURL string

	// Rate limiting for public write endpoints
	RateLimitPerMinute int

	// CORS
	AllowedOrigins []string

	// Metrics
	MetricsEnabled bool

	// Storage
	StorageDriver    string // local | s3
	LocalStoragePath string
	LocalStorageURL  string
	S3Endpoint       string
	S3Region         string
	S3Bucket         string
	S3AccessKey      string
	S3SecretKey      string
	S3PublicURL      string

	// Staff notifications, disabled unless both key and recipient are set
	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string
	StaffEmail     string

	// Logging
	LogLevel string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port:            getEnv("PORT", "5000"),
		Env:             getEnv("ENV", "development"),
		ReadTimeout:     parseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"), 15*time.Second),
		WriteTimeout:    parseDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s"), 15*time.Second),
		ShutdownTimeout: parseDuration(getEnv("HTTP_SHUTDOWN_TIMEOUT", "30s"), 30*time.Second),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "sqlite://grooming_salon.db"),
		SeedOnStart: parseBool(getEnv("SEED_ON_START", "true"), true),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		RateLimitPerMinute: parseInt(getEnv("RATE_LIMIT_PER_MINUTE", "20"), 20),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "*")),

		MetricsEnabled: parseBool(getEnv("METRICS_ENABLED", "true"), true),

		// Storage
		StorageDriver:    getEnv("STORAGE_DRIVER", "local"),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./uploads"),
		LocalStorageURL:  getEnv("LOCAL_STORAGE_URL", "http://localhost:5000/uploads"),
		S3Endpoint:       getEnv("S3_ENDPOINT", ""),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Bucket:         getEnv("S3_BUCKET", "salon-gallery"),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
		S3PublicURL:      getEnv("S3_PUBLIC_URL", ""),

		// Email
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "noreply@grooming-salon.local"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Grooming Salon"),
		StaffEmail:     getEnv("STAFF_EMAIL", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

// NotificationsEnabled reports whether staff emails can be sent.
func (c *Config) NotificationsEnabled() bool {
	return c.SendGridAPIKey != "" && c.StaffEmail != ""
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseBool(s string, defaultValue bool) bool {
	value, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
