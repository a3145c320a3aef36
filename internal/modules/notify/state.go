package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewUserWindow is how long after sign-up the welcome notification may still fire.
const NewUserWindow = 24 * time.Hour

type Item struct {
	ID        string    `json:"id"`
	UniqueID  string    `json:"unique_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
}

// Facts are the server-side inputs to the one-shot triggers.
type Facts struct {
	AccountCreatedAt time.Time
	AssessmentCount  int
}

func NewItem(t Template, now time.Time) Item {
	return Item{
		ID:        t.ID,
		UniqueID:  fmt.Sprintf("%s_%d_%s", t.ID, now.UnixMilli(), uuid.NewString()[:8]),
		Title:     t.Title,
		Message:   t.Message,
		Kind:      t.Kind,
		Timestamp: now,
	}
}

func HasFired(items []Item, templateID string) bool {
	for _, it := range items {
		if it.ID == templateID {
			return true
		}
	}
	return false
}

// Evaluate applies the one-shot triggers to a stored history and returns the new list.
// New items are prepended; the welcome item is added before the milestone so the
// milestone ends up first when both fire together.
func Evaluate(stored []Item, facts Facts, now time.Time) []Item {
	out := make([]Item, len(stored))
	copy(out, stored)

	isNewUser := !facts.AccountCreatedAt.IsZero() && now.Sub(facts.AccountCreatedAt) < NewUserWindow
	if isNewUser && !HasFired(stored, OnboardingWelcome.ID) {
		out = prepend(out, NewItem(OnboardingWelcome, now))
	}
	if facts.AssessmentCount > 0 && !HasFired(stored, MilestoneFirstQuiz.ID) {
		out = prepend(out, NewItem(MilestoneFirstQuiz, now))
	}
	return out
}

// MarkAllRead returns a copy with every item read. Order and length are preserved.
func MarkAllRead(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		it.IsRead = true
		out[i] = it
	}
	return out
}

func UnreadCount(items []Item) int {
	n := 0
	for _, it := range items {
		if !it.IsRead {
			n++
		}
	}
	return n
}

func prepend(items []Item, it Item) []Item {
	return append([]Item{it}, items...)
}
