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
	Environment string
	Port        string
	DatabaseURL string
	RedisURL    string

	// LLM settings
	LLMBaseURL string
	LLMModel   string
	LLMTimeout time.Duration

	// Screening worker pool
	ScreeningPoolCore  int
	ScreeningPoolMax   int
	ScreeningPoolQueue int

	// Resume uploads
	ResumeUploadDir string
	MaxResumeBytes  int64

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	RateLimitInterval  time.Duration
}

func Load() *Config {
	// Inside a container the variables arrive through env_file; only
	// local development reads .env.
	if _, exists := os.LookupEnv("DOCKER_ENV"); !exists {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using environment variables")
		} else {
			log.Println("Loaded .env file successfully")
		}
	} else {
		log.Println("Running in Docker container, using environment variables")
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("SERVER_PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		LLMBaseURL: getEnv("LLM_BASE_URL", "http://localhost:11434"),
		LLMModel:   getEnv("LLM_MODEL", "llama2"),
		LLMTimeout: time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,

		ScreeningPoolCore:  getEnvAsInt("SCREENING_POOL_CORE", 2),
		ScreeningPoolMax:   getEnvAsInt("SCREENING_POOL_MAX", 5),
		ScreeningPoolQueue: getEnvAsInt("SCREENING_POOL_QUEUE", 100),

		ResumeUploadDir: getEnv("RESUME_UPLOAD_DIR", "uploads/resumes"),
		MaxResumeBytes:  int64(getEnvAsInt("MAX_RESUME_SIZE_MB", 5)) * 1024 * 1024,

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
		RateLimitInterval:  time.Duration(getEnvAsInt("RATE_LIMIT_INTERVAL_SECONDS", 60)) * time.Second,
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
