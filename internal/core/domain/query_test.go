package domain

import "testing"

func TestLevelForConfidenceBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  ConfidenceLevel
	}{
		{0.95, ConfidenceVeryHigh},
		{0.9, ConfidenceVeryHigh},
		{0.89, ConfidenceHigh},
		{0.75, ConfidenceHigh},
		{0.74, ConfidenceMedium},
		{0.6, ConfidenceMedium},
		{0.59, ConfidenceLow},
		{0.4, ConfidenceLow},
		{0.39, ConfidenceVeryLow},
		{0, ConfidenceVeryLow},
	}
	for _, tc := range cases {
		if got := LevelForConfidence(tc.score); got != tc.want {
			t.Fatalf("LevelForConfidence(%.2f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestWrapErrorPreservesKind(t *testing.T) {
	inner := ErrTemporary
	err := WrapError(ErrSearchUnavailable, "search legislation", inner)
	if err == nil {
		t.Fatalf("expected wrapped error")
	}
	if !IsKind(err, ErrSearchUnavailable) {
		t.Fatalf("expected search unavailable kind: %v", err)
	}
	if !IsKind(err, ErrTemporary) {
		t.Fatalf("expected inner error preserved: %v", err)
	}
	if WrapError(ErrSearchUnavailable, "noop", nil) != nil {
		t.Fatalf("nil error must stay nil")
	}
}
