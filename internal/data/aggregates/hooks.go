package aggregates

import (
	"time"

	"github.com/careerpath/careerpath-backend/internal/observability"
)

// Event is a notable occurrence during one aggregate write.
type Event string

const (
	EventConflict Event = "conflict"
	EventRetry    Event = "retry"
)

// Hooks receives one Observe per write and any events raised along the way.
// status is "success" or the aggregate error code.
type Hooks interface {
	Observe(op, status string, dur time.Duration)
	Event(op string, ev Event)
}

type noopHooks struct{}

func (noopHooks) Observe(string, string, time.Duration) {}
func (noopHooks) Event(string, Event)                   {}

type metricsHooks struct {
	m *observability.Metrics
}

// NewObservabilityHooks reports aggregate writes to m. A nil m disables reporting.
func NewObservabilityHooks(m *observability.Metrics) Hooks {
	if m == nil {
		return noopHooks{}
	}
	return metricsHooks{m: m}
}

func (h metricsHooks) Observe(op, status string, dur time.Duration) {
	h.m.ObserveAggregateOperation(op, status, dur)
}

func (h metricsHooks) Event(op string, ev Event) {
	h.m.IncAggregateEvent(op, string(ev))
}
