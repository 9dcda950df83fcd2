package domain

// DomainHistory aggregates past classification performance for one legal
// domain. Supplied read-only by the caller; the pipeline never writes it.
type DomainHistory struct {
	AverageAccuracy   float64 `json:"averageAccuracy"`
	SimilarQueryCount int     `json:"similarQueryCount"`
	FeedbackScore     float64 `json:"feedbackScore"`
}

// DocumentHistory holds normalized past-performance metrics for one document,
// each in [0,1].
type DocumentHistory struct {
	FeedbackScore    float64 `json:"feedbackScore"`
	ClickThroughRate float64 `json:"clickThroughRate"`
	SuccessRate      float64 `json:"successRate"`
}

// NeutralHistoryScore is used wherever historical evidence is absent.
// Absence of evidence is not negative evidence.
const NeutralHistoryScore = 0.5
