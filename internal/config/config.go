package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port        string
	Env         string
	APIUrl      string
	FrontendURL string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimeZone string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret        string
	AdminTokenExpiry time.Duration

	// Admin
	AdminPassword     string
	AdminPasswordHash string

	// Object storage
	StorageURL        string
	StorageServiceKey string
	StorageBucket     string
	StorageTimeout    time.Duration

	// Upload limits
	UploadMaxImageSize int64
	UploadMaxVideoSize int64
	UploadMaxPerDay    int

	// Image optimization
	ImageMaxWidth    int
	ImageMaxHeight   int
	ImageQuality     int
	ThumbnailSize    int
	ThumbnailQuality int

	// Security
	RateLimitRequests int
	RateLimitDuration time.Duration

	// CORS
	AllowedOrigins []string
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		APIUrl:      getEnv("API_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "pgf"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "pgf_db"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),
		DBTimeZone: getEnv("DB_TIMEZONE", "Europe/Paris"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// JWT
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key"),
		AdminTokenExpiry: getEnvAsDuration("ADMIN_TOKEN_EXPIRY", "12h"),

		// Admin
		AdminPassword:     getEnv("ADMIN_PASSWORD", "pgf-admin-2025"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		// Object storage
		StorageURL:        getEnv("STORAGE_URL", ""),
		StorageServiceKey: getEnv("STORAGE_SERVICE_KEY", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", "oeuvres"),
		StorageTimeout:    getEnvAsDuration("STORAGE_TIMEOUT", "30s"),

		// Upload limits
		UploadMaxImageSize: getEnvAsInt64("UPLOAD_MAX_IMAGE_SIZE", 50*1024*1024),
		UploadMaxVideoSize: getEnvAsInt64("UPLOAD_MAX_VIDEO_SIZE", 500*1024*1024),
		UploadMaxPerDay:    getEnvAsInt("UPLOAD_MAX_PER_DAY", 200),

		// Image optimization
		ImageMaxWidth:    getEnvAsInt("IMAGE_MAX_WIDTH", 1200),
		ImageMaxHeight:   getEnvAsInt("IMAGE_MAX_HEIGHT", 800),
		ImageQuality:     getEnvAsInt("IMAGE_QUALITY", 85),
		ThumbnailSize:    getEnvAsInt("THUMBNAIL_SIZE", 300),
		ThumbnailQuality: getEnvAsInt("THUMBNAIL_QUALITY", 80),

		// Security
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitDuration: getEnvAsDuration("RATE_LIMIT_DURATION", "1m"),

		// CORS
		AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	value, _ := time.ParseDuration(defaultValue)
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
