package aggregates

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/careerpath/careerpath-backend/internal/observability"
)

func TestObservabilityHooksNilMetricsIsNoop(t *testing.T) {
	if _, ok := NewObservabilityHooks(nil).(noopHooks); !ok {
		t.Fatalf("nil metrics: want noopHooks")
	}
}

func TestObservabilityHooksRecordOperations(t *testing.T) {
	m := observability.New()
	h := NewObservabilityHooks(m)
	h.Observe("saved.toggle", "success", 3*time.Millisecond)
	h.Event("saved.toggle", EventConflict)
	h.Event("assessment.create", EventRetry)
	h.Event("assessment.create", EventRetry)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`cp_aggregate_operations_total{op="saved.toggle",status="success"} 1.000000`,
		`cp_aggregate_events_total{op="saved.toggle",event="conflict"} 1.000000`,
		`cp_aggregate_events_total{op="assessment.create",event="retry"} 2.000000`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}
