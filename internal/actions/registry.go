// Package actions tracks the reversible side effects tools perform during a
// turn. The registry holds opaque ids only; what the action did stays with
// the tool that recorded it.
package actions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Action struct {
	ID       uuid.UUID
	Kind     string
	Summary  string
	Reversed bool
	Created  time.Time
}

type Registry struct {
	mu      sync.Mutex
	actions map[uuid.UUID]*Action
}

func NewRegistry() *Registry {
	return &Registry{
		actions: map[uuid.UUID]*Action{},
	}
}

// Record registers a reversible action and returns its id.
func (r *Registry) Record(kind, summary string) *Action {
	a := &Action{
		ID:      uuid.New(),
		Kind:    kind,
		Summary: summary,
		Created: time.Now(),
	}
	r.mu.Lock()
	r.actions[a.ID] = a
	r.mu.Unlock()
	return a
}

// Reverse compensates a recorded action. Reversing an unknown or already
// reversed action is an explicit failure, never a silent success.
func (r *Registry) Reverse(id string) (bool, string) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false, "unknown action"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.actions[parsed]
	if !ok {
		return false, "unknown action"
	}
	if a.Reversed {
		return false, "action already undone"
	}
	a.Reversed = true
	return true, ""
}

// Get reports the action for id, for tests and telemetry.
func (r *Registry) Get(id uuid.UUID) (Action, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.actions[id]
	if !ok {
		return Action{}, false
	}
	return *a, true
}
