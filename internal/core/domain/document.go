package domain

import "time"

// DocumentType categorizes Turkish legislative documents by formal source.
type DocumentType string

const (
	DocTypeLaw            DocumentType = "law"
	DocTypeRegulation     DocumentType = "regulation"
	DocTypeDecree         DocumentType = "decree"
	DocTypeCircular       DocumentType = "circular"
	DocTypeCourtDecision  DocumentType = "court_decision"
	DocTypeInterpretation DocumentType = "interpretation"
	DocTypeGuidance       DocumentType = "guidance"
)

// KnownDocumentTypes lists every supported type in a fixed order. The ranker's
// diversity metric divides by its length.
var KnownDocumentTypes = []DocumentType{
	DocTypeLaw,
	DocTypeRegulation,
	DocTypeDecree,
	DocTypeCircular,
	DocTypeCourtDecision,
	DocTypeInterpretation,
	DocTypeGuidance,
}

// SearchDocument is a raw candidate as returned by the external legislation
// search service. Content holds whatever snippet the service supplied and may
// be empty.
type SearchDocument struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	OfficialNumber string       `json:"officialNumber,omitempty"`
	Type           DocumentType `json:"type"`
	GazetteDate    time.Time    `json:"gazetteDate,omitzero"`
	GazetteNumber  string       `json:"gazetteNumber,omitempty"`
	URL            string       `json:"url,omitempty"`
	Content        string       `json:"content,omitempty"`
	Authority      string       `json:"authority,omitempty"`
	LegalDomain    string       `json:"legalDomain,omitempty"`
}

// FilteredResult is a candidate that survived the relevance filter.
// FilterReason records every scoring rule that fired, as a short
// machine-parseable trace ("direct:vergi, domain:beyanname, penalty:siber").
type FilteredResult struct {
	Document         SearchDocument `json:"document"`
	RelevanceScore   float64        `json:"relevanceScore"`
	MatchingKeywords []string       `json:"matchingKeywords"`
	FilterReason     string         `json:"filterReason"`
}

// RankingFactors are the twelve per-document sub-scores, each in [0,1],
// grouped into four categories: content relevance, document quality,
// user context, historical performance.
type RankingFactors struct {
	SemanticRelevance float64 `json:"semanticRelevance"`
	KeywordMatch      float64 `json:"keywordMatch"`
	DomainSpecificity float64 `json:"domainSpecificity"`

	AuthorityScore    float64 `json:"authorityScore"`
	FreshnessScore    float64 `json:"freshnessScore"`
	CompletenessScore float64 `json:"completenessScore"`

	IntentAlignment  float64 `json:"intentAlignment"`
	ComplexityMatch  float64 `json:"complexityMatch"`
	UrgencyAlignment float64 `json:"urgencyAlignment"`

	UserFeedbackScore float64 `json:"userFeedbackScore"`
	ClickThroughRate  float64 `json:"clickThroughRate"`
	SuccessRate       float64 `json:"successRate"`
}

// RankedDocument carries a document's final multi-factor score. Rank is the
// 1-based position after the stable descending sort on FinalScore.
type RankedDocument struct {
	Document         SearchDocument `json:"document"`
	OriginalScore    float64        `json:"originalScore"`
	FinalScore       float64        `json:"finalScore"`
	Factors          RankingFactors `json:"rankingFactors"`
	RelevanceReasons []string       `json:"relevanceReasons"`
	Rank             int            `json:"rank"`
}

// ScoreDistribution buckets final scores for observability.
type ScoreDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	Poor      int `json:"poor"`
	VeryPoor  int `json:"veryPoor"`
}

type RankingMetrics struct {
	TotalDocuments int               `json:"totalDocuments"`
	AverageScore   float64           `json:"averageScore"`
	Distribution   ScoreDistribution `json:"scoreDistribution"`
	DiversityScore float64           `json:"diversityScore"`
	CoverageScore  float64           `json:"coverageScore"`
}

type RankingResult struct {
	RankedResults  []RankedDocument `json:"rankedResults"`
	Metrics        RankingMetrics   `json:"rankingMetrics"`
	Explanation    string           `json:"rankingExplanation"`
	Confidence     float64          `json:"confidenceScore"`
	ProcessingTime time.Duration    `json:"processingTime"`
}

// DocumentTypeInfo is the wire shape the calling application expects for a
// document's type.
type DocumentTypeInfo struct {
	Name string `json:"name"`
}

// SearchResult is one entry of the orchestrator's public response.
type SearchResult struct {
	MevzuatID        string           `json:"mevzuatId"`
	MevzuatAdi       string           `json:"mevzuatAdi"`
	MevzuatTur       DocumentTypeInfo `json:"mevzuatTur"`
	RelevanceScore   float64          `json:"relevanceScore"`
	MatchingKeywords []string         `json:"matchingKeywords"`
	FilterReason     string           `json:"filterReason"`
}

// PipelineDetails exposes the intermediate pipeline outputs verbatim for
// observability by the calling system.
type PipelineDetails struct {
	IntentResult       IntentResult     `json:"intentResult"`
	QueryExpansion     QueryExpansion   `json:"queryExpansion"`
	ConfidenceAnalysis ConfidenceResult `json:"confidenceAnalysis"`
	RankingMetrics     RankingMetrics   `json:"rankingMetrics"`
}

type SearchStats struct {
	OriginalCount    int     `json:"originalCount"`
	FilteredCount    int     `json:"filteredCount"`
	FinalCount       int     `json:"finalCount"`
	AverageRelevance float64 `json:"averageRelevance"`
	TopScore         float64 `json:"topScore"`
	BottomScore      float64 `json:"bottomScore"`

	QueryExpansionApplied     bool `json:"queryExpansionApplied"`
	ConfidenceScoreCalculated bool `json:"confidenceScoreCalculated"`
	IntentClassified          bool `json:"intentClassified"`
	ResultRankingApplied      bool `json:"resultRankingApplied"`

	Error   string           `json:"error,omitempty"`
	Details *PipelineDetails `json:"sprint4Details,omitempty"`
}

// SearchResponse is the orchestrator's complete return contract. Callers must
// inspect Stats.Error: pipeline failures are reported there, never raised.
type SearchResponse struct {
	Results  []SearchResult `json:"results"`
	Stats    SearchStats    `json:"stats"`
	RawCount int            `json:"rawCount"`
}

// ArticleNode is one node of a document's article tree as served by the
// legislation detail service.
type ArticleNode struct {
	ID       string        `json:"articleId"`
	Title    string        `json:"title"`
	Children []ArticleNode `json:"children,omitempty"`
}
