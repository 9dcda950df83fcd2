package metrics

import "testing"

func TestNormalizePathKeepsServedRoutes(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/v1/search", "/v1/search"},
		{"/v1/match", "/v1/match"},
		{"/healthz", "/healthz"},
		{"/metrics", "/metrics"},
		{"/v1/search/extra", "other"},
		{"/admin", "other"},
		{"", "other"},
	}
	for _, tc := range cases {
		if got := normalizePath(tc.path); got != tc.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
