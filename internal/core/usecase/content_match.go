package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
	"github.com/hukukasistan/mevzuat-search/internal/core/ports"
)

const (
	// Embedding calls run in small batches with a pause in between. This is
	// backpressure against the embedding provider's rate limits; unbounded
	// parallel calls trigger throttling.
	defaultEmbedBatchSize = 3
	defaultBatchDelay     = 200 * time.Millisecond

	excerptRunes = 200
)

// ContentMatcher performs deep per-article semantic matching for a single
// document. This is an optional side path, not part of the primary ranking
// flow.
type ContentMatcher struct {
	detail    ports.LegislationDetailReader
	embedder  ports.Embedder
	chunker   ports.Chunker
	limiter   *rate.Limiter
	batchSize int
	logger    *slog.Logger
}

// MatcherOptions tunes the embedding backpressure. Zero values fall back to
// the defaults.
type MatcherOptions struct {
	BatchSize  int
	BatchDelay time.Duration
}

func NewContentMatcher(
	detail ports.LegislationDetailReader,
	embedder ports.Embedder,
	chunker ports.Chunker,
	logger *slog.Logger,
) *ContentMatcher {
	return NewContentMatcherWithOptions(detail, embedder, chunker, logger, MatcherOptions{})
}

func NewContentMatcherWithOptions(
	detail ports.LegislationDetailReader,
	embedder ports.Embedder,
	chunker ports.Chunker,
	logger *slog.Logger,
	opts MatcherOptions,
) *ContentMatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultEmbedBatchSize
	}
	if opts.BatchDelay <= 0 {
		opts.BatchDelay = defaultBatchDelay
	}
	return &ContentMatcher{
		detail:    detail,
		embedder:  embedder,
		chunker:   chunker,
		limiter:   rate.NewLimiter(rate.Every(opts.BatchDelay), 1),
		batchSize: opts.BatchSize,
		logger:    logger,
	}
}

type articleChunk struct {
	articleID string
	title     string
	text      string
}

// MatchArticles embeds the query and the document's article content and
// returns the best-matching articles by cosine similarity. Per-article fetch
// failures are skipped; a dead embedding provider yields an error the caller
// should treat as "no deep matches".
func (m *ContentMatcher) MatchArticles(ctx context.Context, documentID, query string, limit int) ([]ports.ArticleMatch, error) {
	if limit <= 0 {
		limit = 5
	}

	queryVec, err := m.embedder.EmbedQuery(ctx, NormalizeText(query))
	if err != nil {
		return nil, domain.WrapError(domain.ErrEmbeddingUnavailable, "embed query", err)
	}

	tree, err := m.detail.ArticleTree(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("article tree for %s: %w", documentID, err)
	}

	chunks := m.collectChunks(ctx, documentID, tree)
	if len(chunks) == 0 {
		return []ports.ArticleMatch{}, nil
	}

	vectors, err := m.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	best := make(map[string]ports.ArticleMatch, len(chunks))
	for i, chunk := range chunks {
		score := cosineSimilarity(queryVec, vectors[i])
		current, ok := best[chunk.articleID]
		if !ok || score > current.Score {
			best[chunk.articleID] = ports.ArticleMatch{
				DocumentID: documentID,
				ArticleID:  chunk.articleID,
				Title:      chunk.title,
				Score:      score,
				Excerpt:    truncateRunes(chunk.text, excerptRunes),
			}
		}
	}

	matches := make([]ports.ArticleMatch, 0, len(best))
	for _, match := range best {
		matches = append(matches, match)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ArticleID < matches[j].ArticleID
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (m *ContentMatcher) collectChunks(ctx context.Context, documentID string, tree []domain.ArticleNode) []articleChunk {
	var chunks []articleChunk
	var walk func(nodes []domain.ArticleNode)
	walk = func(nodes []domain.ArticleNode) {
		for _, node := range nodes {
			content, err := m.detail.ArticleContent(ctx, documentID, node.ID)
			if err != nil {
				m.logger.Warn("article_content_unavailable", "document", documentID, "article", node.ID, "error", err)
			} else {
				for _, text := range m.chunker.Split(content) {
					chunks = append(chunks, articleChunk{articleID: node.ID, title: node.Title, text: text})
				}
			}
			walk(node.Children)
		}
	}
	walk(tree)
	return chunks
}

func (m *ContentMatcher) embedChunks(ctx context.Context, chunks []articleChunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += m.batchSize {
		if err := m.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		end := start + m.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.text)
		}

		batch, err := m.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, domain.WrapError(domain.ErrEmbeddingUnavailable, "embed article chunks", err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embed article chunks: got %d vectors for %d texts", len(batch), len(texts))
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
