// Package httpadapter exposes the search pipeline over HTTP.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
	"github.com/hukukasistan/mevzuat-search/internal/core/ports"
	"github.com/hukukasistan/mevzuat-search/internal/observability/metrics"
)

const (
	maxQueryRunes = 500
	serviceLabel  = "api"
)

type Router struct {
	searchSvc ports.LegalSearchService
	matchSvc  ports.ContentMatchService
	metrics   *metrics.HTTPServerMetrics
}

// NewRouter builds the route table. matchSvc and serverMetrics may be nil;
// the match route then answers 404 and /metrics is not mounted.
func NewRouter(searchSvc ports.LegalSearchService, matchSvc ports.ContentMatchService, serverMetrics *metrics.HTTPServerMetrics) *Router {
	return &Router{
		searchSvc: searchSvc,
		matchSvc:  matchSvc,
		metrics:   serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/search", rt.search)
	mux.HandleFunc("/v1/match", rt.matchArticles)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	return requestIDMiddleware(accessLogMiddleware(recoverMiddleware(mux)))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Query      string `json:"query"`
		SearchType string `json:"searchType"`
		MaxResults int    `json:"maxResults"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}
	if len([]rune(query)) > maxQueryRunes {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query too long"})
		return
	}
	searchType, ok := parseSearchType(req.SearchType)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "searchType must be phrase or title"})
		return
	}

	start := time.Now()
	response := rt.searchSvc.EnhancedSearch(r.Context(), ports.SearchRequest{
		Query:      query,
		SearchType: searchType,
		MaxResults: req.MaxResults,
	})
	rt.recordSearchMetrics(response, time.Since(start))

	// Pipeline faults arrive inside the response; the HTTP status stays 200
	// so callers always get the stats block.
	writeJSON(w, http.StatusOK, response)
}

func (rt *Router) matchArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.matchSvc == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "content matching is not enabled"})
		return
	}

	var req struct {
		DocumentID string `json:"documentId"`
		Query      string `json:"query"`
		Limit      int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" || strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "documentId and query are required"})
		return
	}

	start := time.Now()
	matches, err := rt.matchSvc.MatchArticles(r.Context(), req.DocumentID, req.Query, req.Limit)
	if rt.metrics != nil {
		rt.metrics.RecordStageDuration(serviceLabel, "match", time.Since(start))
	}
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (rt *Router) recordSearchMetrics(response *domain.SearchResponse, elapsed time.Duration) {
	if rt.metrics == nil || response == nil {
		return
	}
	rt.metrics.RecordStageDuration(serviceLabel, "search", elapsed)
	if response.Stats.Error != "" {
		rt.metrics.RecordSearchFailure(serviceLabel)
		return
	}

	if details := response.Stats.Details; details != nil {
		rt.metrics.RecordClassification(serviceLabel, string(details.IntentResult.Method))
		rt.metrics.RecordSearch(
			serviceLabel,
			details.IntentResult.LegalDomain,
			string(details.ConfidenceAnalysis.Level),
			response.RawCount,
			response.Stats.FilteredCount,
			response.Stats.TopScore,
			details.ConfidenceAnalysis.OverallConfidence,
		)
	}
}

func parseSearchType(raw string) (domain.SearchStrategy, bool) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "":
		return "", true
	case string(domain.StrategyPhrase):
		return domain.StrategyPhrase, true
	case string(domain.StrategyTitle):
		return domain.StrategyTitle, true
	default:
		return "", false
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
