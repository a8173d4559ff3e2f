package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Scrape   ScrapeConfig
	Browser  BrowserConfig
	Dataset  DatasetConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logging  LoggingConfig
}

// ScrapeConfig carries the per-run job list. Target URLs come from the
// environment or a newline-separated file, never from package state.
type ScrapeConfig struct {
	URLs        []string
	URLsFile    string
	Concurrency int
	PageTimeout time.Duration
}

type BrowserConfig struct {
	Headless bool
	ProxyURL string
}

type DatasetConfig struct {
	Root          string
	PublicBaseURL string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Table    string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Scrape: ScrapeConfig{
			URLs:        parseCommaSeparated(getEnv("SCRAPE_URLS", "")),
			URLsFile:    getEnv("SCRAPE_URLS_FILE", ""),
			Concurrency: getEnvInt("SCRAPE_CONCURRENCY", 2),
			PageTimeout: time.Duration(getEnvInt("SCRAPE_PAGE_TIMEOUT_SECONDS", 40)) * time.Second,
		},
		Browser: BrowserConfig{
			Headless: getEnvBool("BROWSER_HEADLESS", true),
			ProxyURL: getEnv("BROWSER_PROXY_URL", ""),
		},
		Dataset: DatasetConfig{
			Root:          getEnv("DATASET_ROOT", "dataset"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "fragcat"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "fragcat"),
			Table:    getEnv("POSTGRES_TABLE", "perfumes"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings every command depends on. Command-specific
// requirements (job list, postgres credentials) are checked at command
// startup instead.
func (c *Config) Validate() error {
	if c.Dataset.Root == "" {
		return fmt.Errorf("DATASET_ROOT is required")
	}
	if c.Scrape.Concurrency < 1 {
		return fmt.Errorf("SCRAPE_CONCURRENCY must be at least 1")
	}
	return nil
}

// ScrapeURLs resolves the full job list: SCRAPE_URLS entries plus the lines
// of SCRAPE_URLS_FILE when set.
func (c *Config) ScrapeURLs() ([]string, error) {
	urls := append([]string(nil), c.Scrape.URLs...)

	if c.Scrape.URLsFile != "" {
		data, err := os.ReadFile(c.Scrape.URLsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read SCRAPE_URLS_FILE: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "#") {
				urls = append(urls, trimmed)
			}
		}
	}

	return urls, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
