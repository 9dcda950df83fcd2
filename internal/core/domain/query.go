package domain

// ClassificationMethod names the path that produced a domain classification.
type ClassificationMethod string

const (
	MethodKeyword  ClassificationMethod = "keyword"
	MethodSemantic ClassificationMethod = "semantic"
	MethodHybrid   ClassificationMethod = "hybrid"
)

// Intent is the user's underlying question type, orthogonal to the legal domain.
type Intent string

const (
	IntentDefinition  Intent = "definition_request"
	IntentProcedure   Intent = "procedure_inquiry"
	IntentRights      Intent = "rights_question"
	IntentObligation  Intent = "obligation_inquiry"
	IntentPenalty     Intent = "penalty_question"
	IntentDocument    Intent = "document_request"
	IntentTimeline    Intent = "timeline_question"
	IntentCost        Intent = "cost_inquiry"
	IntentAdvice      Intent = "legal_advice"
	IntentCase        Intent = "case_analysis"
	IntentPrecedent   Intent = "precedent_search"
	IntentLegislation Intent = "legislation_lookup"
)

type QueryType string

const (
	QueryTypeInformational QueryType = "informational"
	QueryTypeProcedural    QueryType = "procedural"
	QueryTypeAnalytical    QueryType = "analytical"
	QueryTypeNavigational  QueryType = "navigational"
)

type UserGoal string

const (
	GoalLearn           UserGoal = "learn"
	GoalSolveProblem    UserGoal = "solve_problem"
	GoalVerify          UserGoal = "verify"
	GoalPrepareDocument UserGoal = "prepare_document"
)

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

type SearchStrategy string

const (
	StrategyPhrase SearchStrategy = "phrase"
	StrategyTitle  SearchStrategy = "title"
)

// IntentResult is the full interpretation of a single query. Built once per
// query, never mutated afterwards.
type IntentResult struct {
	LegalDomain      string               `json:"legalDomain"`
	DomainConfidence float64              `json:"domainConfidence"`
	PrimaryIntent    Intent               `json:"primaryIntent"`
	SecondaryIntents []Intent             `json:"secondaryIntents"`
	IntentConfidence float64              `json:"intentConfidence"`
	QueryType        QueryType            `json:"queryType"`
	UserGoal         UserGoal             `json:"userGoal"`
	Urgency          UrgencyLevel         `json:"urgencyLevel"`
	ComplexityScore  float64              `json:"complexityScore"`
	SearchStrategy   SearchStrategy       `json:"searchStrategy"`
	PrioritizedTerms []string             `json:"prioritizedTerms"`
	Keywords         []string             `json:"keywords"`
	Method           ClassificationMethod `json:"method"`
	Reasoning        string               `json:"reasoning,omitempty"`
}

// QueryExpansion holds the generated search-term variants for one query.
// ExpandedTerms is the deduplicated, relevance-ranked union of the sub-lists,
// capped at MaxExpandedTerms.
type QueryExpansion struct {
	OriginalQuery   string   `json:"originalQuery"`
	ExpandedTerms   []string `json:"expandedTerms"`
	Synonyms        []string `json:"synonyms"`
	RelatedConcepts []string `json:"relatedConcepts"`
	ContextualTerms []string `json:"contextualTerms"`
	LegalVariations []string `json:"legalVariations"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning,omitempty"`
}

// MaxExpandedTerms caps QueryExpansion.ExpandedTerms.
const MaxExpandedTerms = 20

// ConfidenceLevel is an ordinal bucket over the overall confidence score.
type ConfidenceLevel string

const (
	ConfidenceVeryLow  ConfidenceLevel = "very_low"
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
)

// LevelForConfidence maps an overall confidence score to its bucket.
// Boundaries are inclusive on the upper bucket: 0.75 is "high", not "medium".
func LevelForConfidence(score float64) ConfidenceLevel {
	switch {
	case score >= 0.9:
		return ConfidenceVeryHigh
	case score >= 0.75:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	case score >= 0.4:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// ConfidenceFactors are the six independently computed inputs to the overall
// query-interpretation confidence, each in [0,1].
type ConfidenceFactors struct {
	DomainMatch        float64 `json:"domainMatch"`
	TermCoverage       float64 `json:"termCoverage"`
	SemanticSimilarity float64 `json:"semanticSimilarity"`
	QueryComplexity    float64 `json:"queryComplexity"`
	ResultRelevance    float64 `json:"resultRelevance"`
	HistoricalAccuracy float64 `json:"historicalAccuracy"`
}

// ConfidenceResult scores how much the system trusts its own interpretation
// of the query. This is distinct from any per-document score.
type ConfidenceResult struct {
	OverallConfidence     float64           `json:"overallConfidence"`
	Level                 ConfidenceLevel   `json:"confidenceLevel"`
	Factors               ConfidenceFactors `json:"factors"`
	UncertaintyIndicators []string          `json:"uncertaintyIndicators"`
	RecommendedActions    []string          `json:"recommendedActions"`
	Threshold             float64           `json:"threshold"`
	Reasoning             string            `json:"reasoning,omitempty"`
}
