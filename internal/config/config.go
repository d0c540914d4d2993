package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP server settings
	Port          string
	AllowedOrigin string

	// Oracle settings
	OracleProvider    string // "ollama" or "gemini"
	OllamaURL         string
	OllamaModel       string
	GeminiAPIKey      string
	GeminiModel       string
	OracleTimeout     time.Duration
	MaxOracleRequests int // maximum oracle requests per day (0 = unlimited)
	RetryAttempts     int
	RetryDelay        time.Duration

	// Feed settings
	SearchConfigPath string
	DefaultDays      int

	// Pipeline settings
	DedupeBatchLimit int
	ResultCap        int
	CacheTTL         time.Duration

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Port:             "8080",
		OracleProvider:   "ollama",
		OllamaURL:        "http://localhost:11434/api/generate",
		OllamaModel:      "deepseek-r1:8b",
		GeminiModel:      "gemini-1.5-flash",
		OracleTimeout:    30 * time.Second,
		RetryAttempts:    1,
		RetryDelay:       5 * time.Second,
		SearchConfigPath: "configs/search.yaml",
		DefaultDays:      2,
		DedupeBatchLimit: 25,
		ResultCap:        6,
		CacheTTL:         12 * time.Hour,
	}

	// Load from environment
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)
	cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", "http://localhost:5173")
	cfg.OracleProvider = getEnvOrDefault("ORACLE_PROVIDER", cfg.OracleProvider)
	cfg.OllamaURL = getEnvOrDefault("OLLAMA_URL", cfg.OllamaURL)
	cfg.OllamaModel = getEnvOrDefault("OLLAMA_MODEL", cfg.OllamaModel)
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.SearchConfigPath = getEnvOrDefault("SEARCH_CONFIG_PATH", cfg.SearchConfigPath)

	if v := getEnvIntOrDefault("ORACLE_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.OracleTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("RETRY_ATTEMPTS", 0); v > 0 {
		cfg.RetryAttempts = v
	}
	if v := getEnvIntOrDefault("RETRY_DELAY_SECONDS", 0); v > 0 {
		cfg.RetryDelay = time.Duration(v) * time.Second
	}
	cfg.MaxOracleRequests = getEnvIntOrDefault("MAX_ORACLE_REQUESTS", 0)
	if v := getEnvIntOrDefault("DEFAULT_DAYS", 0); v > 0 {
		cfg.DefaultDays = v
	}
	if v := getEnvIntOrDefault("DEDUPE_BATCH_LIMIT", 0); v > 0 {
		cfg.DedupeBatchLimit = v
	}
	if v := getEnvIntOrDefault("RESULT_CAP", 0); v > 0 {
		cfg.ResultCap = v
	}
	if v := getEnvIntOrDefault("CACHE_TTL_HOURS", 0); v > 0 {
		cfg.CacheTTL = time.Duration(v) * time.Hour
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.OracleProvider != "ollama" && c.OracleProvider != "gemini" {
		return fmt.Errorf("ORACLE_PROVIDER must be 'ollama' or 'gemini'")
	}
	if c.OracleProvider == "gemini" && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when ORACLE_PROVIDER=gemini")
	}
	if c.OracleProvider == "ollama" && c.OllamaURL == "" {
		return fmt.Errorf("OLLAMA_URL is required when ORACLE_PROVIDER=ollama")
	}
	return nil
}
