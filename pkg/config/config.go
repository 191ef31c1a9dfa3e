package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogJSON  bool
	LogDebug bool

	// Reference data. Empty paths fall back to the embedded defaults;
	// RefDataDatabaseURL switches taxonomy/catalog loading to Postgres.
	TaxonomyPath       string
	CatalogPath        string
	JobsPath           string
	RefDataDatabaseURL string

	// Upload / extraction bounds.
	UploadMaxBytes int64
	ExtractTimeout time.Duration

	// Analysis.
	RecommendCap int
	MaxTextChars int

	// Chat relay / provider.
	Provider        string // "openrouter" or "gemini"
	ProviderTimeout time.Duration
	ChatMaxAttempts int
	ChatHistoryMax  int

	OpenRouterAPIKey   string
	OpenRouterBase     string
	OpenRouterModel    string
	OpenRouterAppTitle string
	OpenRouterReferer  string

	GeminiAPIKey string
	GeminiModel  string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:     getEnv("PORT", "8080"),
		LogJSON:  getEnvBool("LOG_JSON", false),
		LogDebug: getEnvBool("LOG_DEBUG", false),

		TaxonomyPath:       os.Getenv("TAXONOMY_PATH"),
		CatalogPath:        os.Getenv("CATALOG_PATH"),
		JobsPath:           getEnv("JOBS_PATH", "data/jobs.json"),
		RefDataDatabaseURL: os.Getenv("REFDATA_DATABASE_URL"),

		UploadMaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 15<<20)), // 15MB
		ExtractTimeout: getEnvDuration("EXTRACT_TIMEOUT", 20*time.Second),

		RecommendCap: getEnvInt("RECOMMEND_CAP", 3),
		MaxTextChars: getEnvInt("MAX_TEXT_CHARS", 12_000),

		Provider:        getEnv("LLM_PROVIDER", "openrouter"),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 30*time.Second),
		ChatMaxAttempts: getEnvInt("CHAT_MAX_ATTEMPTS", 1),
		ChatHistoryMax:  getEnvInt("CHAT_HISTORY_MAX", 20),

		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:     os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterModel:    getEnv("OPENROUTER_MODEL", "qwen/qwen2.5-32b-instruct"),
		OpenRouterAppTitle: os.Getenv("OPENROUTER_APP_TITLE"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
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
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
