// Package notify tracks the one-shot and action notifications shown to a client.
// Each template moves NotYetFired -> Fired(unread) -> Fired(read); read never
// reverts. State is kept per client, not per account.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type State struct {
	Items       []Item `json:"notifications"`
	UnreadCount int    `json:"unread_count"`
}

type Tracker struct {
	store Store
	log   *logger.Logger
	now   func() time.Time

	// serializes read-modify-write cycles within this process
	mu sync.Mutex
}

func NewTracker(store Store, log *logger.Logger) *Tracker {
	return &Tracker{
		store: store,
		log:   log.With("module", "NotificationTracker"),
		now:   time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

func (t *Tracker) List(ctx context.Context, key string) (State, error) {
	items, err := t.store.Load(ctx, key)
	if err != nil {
		return State{}, err
	}
	return stateOf(items), nil
}

// Sync applies the onboarding and milestone triggers and persists the result.
func (t *Tracker) Sync(ctx context.Context, key string, facts Facts) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored, err := t.store.Load(ctx, key)
	if err != nil {
		return State{}, err
	}
	items := Evaluate(stored, facts, t.now())
	if len(items) != len(stored) {
		if err := t.persist(ctx, key, items); err != nil {
			return State{}, err
		}
		t.log.Debug("notifications fired", "client_id", key, "added", len(items)-len(stored))
	}
	return stateOf(items), nil
}

// Trigger fires a template unconditionally. Action templates may fire any number of times.
func (t *Tracker) Trigger(ctx context.Context, key string, tpl Template) (State, error) {
	if _, ok := TemplateByID(tpl.ID); !ok {
		return State{}, fmt.Errorf("unknown notification template %q", tpl.ID)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	stored, err := t.store.Load(ctx, key)
	if err != nil {
		return State{}, err
	}
	items := prepend(stored, NewItem(tpl, t.now()))
	if err := t.persist(ctx, key, items); err != nil {
		return State{}, err
	}
	return stateOf(items), nil
}

func (t *Tracker) MarkAllRead(ctx context.Context, key string) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored, err := t.store.Load(ctx, key)
	if err != nil {
		return State{}, err
	}
	items := MarkAllRead(stored)
	if err := t.persist(ctx, key, items); err != nil {
		return State{}, err
	}
	return stateOf(items), nil
}

// persist skips empty lists, matching the browser behaviour of never writing an
// empty history.
func (t *Tracker) persist(ctx context.Context, key string, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	if err := t.store.Save(ctx, key, items); err != nil {
		return fmt.Errorf("save notifications: %w", err)
	}
	return nil
}

func stateOf(items []Item) State {
	if items == nil {
		items = []Item{}
	}
	return State{Items: items, UnreadCount: UnreadCount(items)}
}
