package config

import "testing"

func TestLoadUsesDefaults(t *testing.T) {
	t.Setenv("MEVZUAT_API_URL", "")
	t.Setenv("MIN_RELEVANCE_SCORE", "")
	t.Setenv("MAX_RESULTS", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("NATS_URL", "")

	cfg := Load()
	if cfg.MevzuatAPIURL != "http://localhost:8800" {
		t.Fatalf("unexpected default api url %q", cfg.MevzuatAPIURL)
	}
	if cfg.MinRelevanceScore != 0.15 {
		t.Fatalf("expected default threshold 0.15, got %v", cfg.MinRelevanceScore)
	}
	if cfg.MaxResults != 10 {
		t.Fatalf("expected default max results 10, got %d", cfg.MaxResults)
	}
	if cfg.PostgresDSN != "" {
		t.Fatalf("history must be off by default, got %q", cfg.PostgresDSN)
	}
	if cfg.NATSURL != "" {
		t.Fatalf("analytics must be off by default, got %q", cfg.NATSURL)
	}
	if cfg.NATSSubject != "search.completed" {
		t.Fatalf("unexpected default subject %q", cfg.NATSSubject)
	}
	if cfg.EmbedBatchSize != 3 || cfg.EmbedBatchDelayMillis != 200 {
		t.Fatalf("unexpected embed batch defaults %d/%d", cfg.EmbedBatchSize, cfg.EmbedBatchDelayMillis)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("MIN_RELEVANCE_SCORE", "0.25")
	t.Setenv("MAX_RESULTS", "20")
	t.Setenv("BREAKER_ENABLED", "false")
	t.Setenv("OLLAMA_EMBED_MODEL", "nomic-embed-text")

	cfg := Load()
	if cfg.MinRelevanceScore != 0.25 {
		t.Fatalf("expected threshold override, got %v", cfg.MinRelevanceScore)
	}
	if cfg.MaxResults != 20 {
		t.Fatalf("expected max results 20, got %d", cfg.MaxResults)
	}
	if cfg.BreakerEnabled {
		t.Fatalf("expected breaker disabled")
	}
	if cfg.OllamaEmbedModel != "nomic-embed-text" {
		t.Fatalf("unexpected embed model %q", cfg.OllamaEmbedModel)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MAX_RESULTS", "çok")
	t.Setenv("MIN_RELEVANCE_SCORE", "yüksek")

	cfg := Load()
	if cfg.MaxResults != 10 || cfg.MinRelevanceScore != 0.15 {
		t.Fatalf("malformed values must fall back, got %+v", cfg)
	}
}
