package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hukukasistan/mevzuat-search/internal/config"
	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
	"github.com/hukukasistan/mevzuat-search/internal/core/ports"
	"github.com/hukukasistan/mevzuat-search/internal/core/usecase"
	"github.com/hukukasistan/mevzuat-search/internal/infrastructure/chunking"
	"github.com/hukukasistan/mevzuat-search/internal/infrastructure/embedding/ollama"
	"github.com/hukukasistan/mevzuat-search/internal/infrastructure/mevzuat"
	"github.com/hukukasistan/mevzuat-search/internal/infrastructure/queue/nats"
	"github.com/hukukasistan/mevzuat-search/internal/infrastructure/repository/postgres"
	"github.com/hukukasistan/mevzuat-search/internal/infrastructure/resilience"
	"github.com/hukukasistan/mevzuat-search/internal/observability/logging"
	"github.com/hukukasistan/mevzuat-search/internal/observability/metrics"
)

const serviceName = "mevzuat-search"

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.HTTPServerMetrics

	SearchUC ports.LegalSearchService
	MatchUC  ports.ContentMatchService

	closeFn func()
}

// New wires the whole pipeline. The catalogue must parse; Postgres and NATS
// are optional and switched off by empty config values.
func New(cfg config.Config) (*App, error) {
	catalog, err := domain.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load legal domain catalog: %w", err)
	}

	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)
	serverMetrics := metrics.NewHTTPServerMetrics(serviceName)

	resilienceCfg := resilience.DefaultConfig()
	resilienceCfg.RetryMaxAttempts = cfg.RetryMaxAttempts
	resilienceCfg.BreakerEnabled = cfg.BreakerEnabled
	if cfg.BreakerMinRequests > 0 {
		resilienceCfg.BreakerMinRequests = uint32(cfg.BreakerMinRequests)
	}
	if cfg.BreakerFailureRatio > 0 {
		resilienceCfg.BreakerFailureRatio = cfg.BreakerFailureRatio
	}
	executor := resilience.NewExecutor(resilienceCfg)

	mevzuatClient := mevzuat.NewWithOptions(cfg.MevzuatAPIURL, mevzuat.Options{
		Timeout:            time.Duration(cfg.MevzuatTimeoutSeconds) * time.Second,
		ResilienceExecutor: executor,
	})
	embedder := ollama.NewWithOptions(cfg.OllamaURL, cfg.OllamaEmbedModel, ollama.Options{
		ResilienceExecutor: executor,
	})

	var history ports.HistoryProvider
	closers := make([]func(), 0, 2)
	if cfg.PostgresDSN != "" {
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		history = postgres.NewHistoryRepository(db)
		closers = append(closers, func() { _ = db.Close() })
	}

	var publisher ports.EventPublisher
	if cfg.NATSURL != "" {
		natsPublisher, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
			ResilienceExecutor: executor,
		})
		if err != nil {
			return nil, fmt.Errorf("init analytics publisher: %w", err)
		}
		publisher = natsPublisher
		closers = append(closers, natsPublisher.Close)
	}

	classifier := usecase.NewClassifier(catalog, embedder, logger)
	expander := usecase.NewExpander()
	confidence := usecase.NewConfidenceScorer(catalog)
	filter := usecase.NewFilter(catalog, usecase.FilterConfig{
		MinRelevanceScore: cfg.MinRelevanceScore,
		MaxResults:        cfg.MaxResults,
	})
	ranker := usecase.NewRanker(catalog)

	searchUC := usecase.NewSearchUseCase(
		catalog,
		classifier,
		expander,
		confidence,
		filter,
		ranker,
		mevzuatClient,
		history,
		publisher,
		logger,
	)

	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	matchUC := usecase.NewContentMatcherWithOptions(mevzuatClient, embedder, chunker, logger, usecase.MatcherOptions{
		BatchSize:  cfg.EmbedBatchSize,
		BatchDelay: time.Duration(cfg.EmbedBatchDelayMillis) * time.Millisecond,
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  serverMetrics,
		SearchUC: searchUC,
		MatchUC:  matchUC,
		closeFn: func() {
			for _, close := range closers {
				close()
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
