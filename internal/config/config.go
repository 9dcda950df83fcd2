package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	MevzuatAPIURL         string
	MevzuatTimeoutSeconds int

	OllamaURL        string
	OllamaEmbedModel string

	// Empty DSN disables historical lookups; the pipeline then uses neutral
	// values everywhere.
	PostgresDSN string

	// Empty URL disables analytics publishing.
	NATSURL     string
	NATSSubject string

	MinRelevanceScore float64
	MaxResults        int

	ChunkSize    int
	ChunkOverlap int

	EmbedBatchSize        int
	EmbedBatchDelayMillis int

	RetryMaxAttempts    int
	BreakerEnabled      bool
	BreakerMinRequests  int
	BreakerFailureRatio float64
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		MevzuatAPIURL:         mustEnv("MEVZUAT_API_URL", "http://localhost:8800"),
		MevzuatTimeoutSeconds: mustEnvInt("MEVZUAT_TIMEOUT_SECONDS", 8),

		OllamaURL:        mustEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaEmbedModel: mustEnv("OLLAMA_EMBED_MODEL", "bge-m3"),

		PostgresDSN: mustEnv("POSTGRES_DSN", ""),

		NATSURL:     mustEnv("NATS_URL", ""),
		NATSSubject: mustEnv("NATS_SUBJECT", "search.completed"),

		MinRelevanceScore: mustEnvFloat("MIN_RELEVANCE_SCORE", 0.15),
		MaxResults:        mustEnvInt("MAX_RESULTS", 10),

		ChunkSize:    mustEnvInt("CHUNK_SIZE", 900),
		ChunkOverlap: mustEnvInt("CHUNK_OVERLAP", 150),

		EmbedBatchSize:        mustEnvInt("EMBED_BATCH_SIZE", 3),
		EmbedBatchDelayMillis: mustEnvInt("EMBED_BATCH_DELAY_MS", 200),

		RetryMaxAttempts:    mustEnvInt("RETRY_MAX_ATTEMPTS", 3),
		BreakerEnabled:      mustEnvBool("BREAKER_ENABLED", true),
		BreakerMinRequests:  mustEnvInt("BREAKER_MIN_REQUESTS", 10),
		BreakerFailureRatio: mustEnvFloat("BREAKER_FAILURE_RATIO", 0.5),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
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

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
