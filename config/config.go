package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is built once at startup and injected where needed; nothing reads
// the environment after Load returns.
type Config struct {
	Host                string
	Port                int
	VeniceAIKey         string
	VisionModelEndpoint string
	TablelandURL        string
	DatabaseURL         string
	RateLimitPerMinute  int
	RateLimitBurst      int
}

func Load() (*Config, error) {
	// .env is a local convenience; deployments use the process environment.
	_ = godotenv.Load()

	cfg := &Config{
		Host:                getEnv("HOST", "0.0.0.0"),
		Port:                getEnvInt("PORT", 8080),
		VeniceAIKey:         os.Getenv("VENICE_AI_KEY"),
		VisionModelEndpoint: getEnv("VISION_MODEL_ENDPOINT", "http://localhost:8000"),
		TablelandURL:        os.Getenv("TABLELAND_URL"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 10),
	}

	if cfg.VeniceAIKey == "" {
		return nil, errors.New("VENICE_AI_KEY environment variable is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
