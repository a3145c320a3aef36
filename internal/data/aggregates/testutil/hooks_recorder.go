package testutil

import (
	"sync"
	"time"

	"github.com/careerpath/careerpath-backend/internal/data/aggregates"
)

// HooksRecorder keeps every aggregate hook call for assertions.
type HooksRecorder struct {
	mu     sync.Mutex
	writes []Write
	events map[string][]aggregates.Event
}

type Write struct {
	Op       string
	Status   string
	Duration time.Duration
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) Observe(op, status string, dur time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.writes = append(h.writes, Write{Op: op, Status: status, Duration: dur})
}

func (h *HooksRecorder) Event(op string, ev aggregates.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.events == nil {
		h.events = map[string][]aggregates.Event{}
	}
	h.events[op] = append(h.events[op], ev)
}

// Writes returns the observed writes in call order.
func (h *HooksRecorder) Writes() []Write {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Write(nil), h.writes...)
}

// Count returns how often ev was raised for op.
func (h *HooksRecorder) Count(op string, ev aggregates.Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, e := range h.events[op] {
		if e == ev {
			n++
		}
	}
	return n
}
