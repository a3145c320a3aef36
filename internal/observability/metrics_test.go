package observability

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsNilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.ObserveLLMRequest("gemini", "ok", time.Second, 10, 20)
	m.ObserveAggregateOperation("saved.toggle", "ok", time.Millisecond)
	m.IncQuotaDenied("assessment")
	if got := m.QuotaDenials("assessment"); got != 0 {
		t.Fatalf("nil denials: want=0 got=%v", got)
	}
	rr := httptest.NewRecorder()
	m.WriteHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != 503 {
		t.Fatalf("nil WriteHTTP status: want=503 got=%d", rr.Code)
	}
}

func TestMetricsExposition(t *testing.T) {
	m := New()
	m.ObserveAPI("POST", "/api/quiz", "502", 120*time.Millisecond)
	m.ObserveLLMRequest("gemini-flash-latest", "ok", 2*time.Second, 100, 250)
	m.IncQuotaDenied("assessment")
	m.IncQuotaDenied("assessment")
	m.IncAggregateEvent("saved.toggle", "conflict")

	if got := m.QuotaDenials("assessment"); got != 2 {
		t.Fatalf("denials: want=2 got=%v", got)
	}

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`cp_api_requests_total{method="POST",route="/api/quiz",status="502"} 1.000000`,
		`cp_api_requests_error_total 1.000000`,
		`cp_llm_tokens_total{model="gemini-flash-latest",direction="output"} 250.000000`,
		`cp_quota_denials_total{resource="assessment"} 2.000000`,
		`cp_aggregate_events_total{op="saved.toggle",event="conflict"} 1.000000`,
		`cp_api_request_duration_seconds_bucket{method="POST",route="/api/quiz",status="502",le="0.25"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("exposition missing %q\n%s", want, out)
		}
	}
}
