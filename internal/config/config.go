package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	SeedPath  string // empty means the embedded Valencia seed
	JWTSecret string
	Env       string

	LogLevel  string
	LogFormat string // text or json

	RateLimit      int // requests per minute per IP
	TopBedroomBand int
	PriceBands     []string
}

// Load 加载配置
func Load() *Config {
	if err := loadDotEnv(".env"); err != nil {
		log.Printf("[config] ignoring .env: %v", err)
	}

	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/listings.db"),
		SeedPath:  getEnv("SEED_PATH", ""),
		JWTSecret: getEnv("JWT_SECRET", ""), // empty disables admin routes
		Env:       getEnv("APP_ENV", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		RateLimit:      getEnvInt("RATE_LIMIT", 120),
		TopBedroomBand: getEnvInt("TOP_BEDROOM_BAND", 3),
		PriceBands:     getEnvList("PRICE_BANDS", []string{"0-1000", "1000-1400", "1400-1600", "1600+"}),
	}
}

// IsProduction reports whether defects should fail soft
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// loadDotEnv reads path into the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("[config] no .env file found, using environment variables")
		return nil
	}
	return fmt.Errorf("failed to parse %s: %w", path, err)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
