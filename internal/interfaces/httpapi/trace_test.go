package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.ListAthleteRanking", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldCreateHTTPAPISpan(tt.in)
			if got != tt.want {
				t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartHandlerSpan_UntracedRequestKeepsContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/groups/racha-quinta-meireles/matches", nil)
	req.SetPathValue("groupID", "racha-quinta-meireles")

	ctx, span := startHandlerSpan(req, "httpapi.Handler.ListMatches")
	defer span.End()

	if ctx != req.Context() {
		t.Fatalf("expected untraced request context to be returned as is")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no span for untraced request")
	}
}
