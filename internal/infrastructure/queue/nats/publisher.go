// Package nats publishes search analytics events. Publishing is
// fire-and-forget from the pipeline's point of view; the analytics consumer
// owns durability.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/hukukasistan/mevzuat-search/internal/core/ports"
	"github.com/hukukasistan/mevzuat-search/internal/infrastructure/resilience"
)

type Publisher struct {
	conn     *nats.Conn
	subject  string
	executor *resilience.Executor
}

func New(url, subject string) (*Publisher, error) {
	return NewWithOptions(url, subject, Options{})
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	ResilienceExecutor   *resilience.Executor
}

func NewWithOptions(url, subject string, options Options) (*Publisher, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	retryOnFailedConnect := true
	if options.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *options.RetryOnFailedConnect
	}

	conn, err := nats.Connect(
		url,
		nats.Name("mevzuat-search"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Publisher{
		conn:     conn,
		subject:  subject,
		executor: options.ResilienceExecutor,
	}, nil
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// PublishSearchCompleted emits one analytics event. Duration is serialized as
// whole milliseconds so consumers never parse Go duration strings.
func (p *Publisher) PublishSearchCompleted(ctx context.Context, event ports.SearchEvent) error {
	payload, err := json.Marshal(searchCompletedMessage{
		EventID:         event.EventID,
		QueryHash:       event.QueryHash,
		LegalDomain:     event.LegalDomain,
		ConfidenceLevel: string(event.ConfidenceLevel),
		ResultCount:     event.ResultCount,
		Failed:          event.Failed,
		DurationMillis:  event.Duration.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("marshal search event: %w", err)
	}

	call := func(_ context.Context) error {
		if err := p.conn.Publish(p.subject, payload); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	if p.executor != nil {
		err = p.executor.Execute(ctx, "nats.publish", call, classifyNATSError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return wrapTemporaryIfNeeded(err)
	}
	return nil
}

type searchCompletedMessage struct {
	EventID         string `json:"eventId"`
	QueryHash       string `json:"queryHash"`
	LegalDomain     string `json:"legalDomain"`
	ConfidenceLevel string `json:"confidenceLevel"`
	ResultCount     int    `json:"resultCount"`
	Failed          bool   `json:"failed"`
	DurationMillis  int64  `json:"durationMs"`
}
