// Package mevzuat implements the HTTP client for the external Turkish
// legislation search and detail services.
package mevzuat

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
	"github.com/hukukasistan/mevzuat-search/internal/core/ports"
	"github.com/hukukasistan/mevzuat-search/internal/infrastructure/resilience"
)

const wireDateLayout = "2006-01-02"

type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL string) *Client {
	return NewWithOptions(baseURL, Options{})
}

type Options struct {
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func NewWithOptions(baseURL string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

type searchRequest struct {
	Phrase        string   `json:"phrase,omitempty"`
	Title         string   `json:"title,omitempty"`
	DocumentTypes []string `json:"documentTypes,omitempty"`
	PageSize      int      `json:"pageSize"`
	Sort          string   `json:"sort"`
}

type wireDocument struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	OfficialNumber string `json:"officialNumber,omitempty"`
	Type           string `json:"type"`
	GazetteDate    string `json:"gazetteDate,omitempty"`
	GazetteNumber  string `json:"gazetteNumber,omitempty"`
	URL            string `json:"url,omitempty"`
	Content        string `json:"content,omitempty"`
	Authority      string `json:"authority,omitempty"`
}

type searchResponse struct {
	Documents    []wireDocument `json:"documents"`
	TotalResults int            `json:"totalResults"`
}

// Search issues one search call. The strategy selects between full-text
// phrase matching and title matching on the service side.
func (c *Client) Search(ctx context.Context, term string, opts ports.SearchOptions) ([]domain.SearchDocument, int, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, 0, domain.WrapError(domain.ErrInvalidInput, "mevzuat search", fmt.Errorf("empty search term"))
	}

	request := searchRequest{
		PageSize: opts.PageSize,
		Sort:     "relevance",
	}
	if opts.Strategy == domain.StrategyTitle {
		request.Title = term
	} else {
		request.Phrase = term
	}
	for _, t := range opts.Types {
		request.DocumentTypes = append(request.DocumentTypes, string(t))
	}

	var response searchResponse
	err := c.execute(ctx, "mevzuat.search", func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/api/v1/search", request, &response, "search")
	})
	if err != nil {
		return nil, 0, wrapTemporaryIfNeeded("mevzuat search", err)
	}

	docs := make([]domain.SearchDocument, 0, len(response.Documents))
	for _, wire := range response.Documents {
		docs = append(docs, wire.toDomain())
	}
	return docs, response.TotalResults, nil
}

// ArticleTree returns the article hierarchy of one document.
func (c *Client) ArticleTree(ctx context.Context, documentID string) ([]domain.ArticleNode, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "mevzuat article tree", fmt.Errorf("empty document id"))
	}

	request := map[string]string{"documentId": documentID}
	var response struct {
		Articles []domain.ArticleNode `json:"articles"`
	}
	err := c.execute(ctx, "mevzuat.article_tree", func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/api/v1/article-tree", request, &response, "article tree")
	})
	if err != nil {
		return nil, wrapTemporaryIfNeeded("mevzuat article tree", err)
	}
	return response.Articles, nil
}

// ArticleContent returns one article's body as markdown.
func (c *Client) ArticleContent(ctx context.Context, documentID, articleID string) (string, error) {
	if strings.TrimSpace(documentID) == "" || strings.TrimSpace(articleID) == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "mevzuat article content", fmt.Errorf("empty document or article id"))
	}

	request := map[string]string{"documentId": documentID, "articleId": articleID}
	var response struct {
		MarkdownContent string `json:"markdownContent"`
	}
	err := c.execute(ctx, "mevzuat.article_content", func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/api/v1/article-content", request, &response, "article content")
	})
	if err != nil {
		return "", wrapTemporaryIfNeeded("mevzuat article content", err)
	}
	return response.MarkdownContent, nil
}

func (c *Client) execute(ctx context.Context, operation string, call func(context.Context) error) error {
	if c.executor != nil {
		return c.executor.Execute(ctx, operation, call, classifyMevzuatError)
	}
	return call(ctx)
}

func (w wireDocument) toDomain() domain.SearchDocument {
	doc := domain.SearchDocument{
		ID:             w.ID,
		Title:          w.Title,
		OfficialNumber: w.OfficialNumber,
		Type:           domain.DocumentType(w.Type),
		GazetteNumber:  w.GazetteNumber,
		URL:            w.URL,
		Content:        w.Content,
		Authority:      w.Authority,
	}
	if w.GazetteDate != "" {
		if parsed, err := time.Parse(wireDateLayout, w.GazetteDate); err == nil {
			doc.GazetteDate = parsed
		}
	}
	return doc
}
