// Package notify fans stock events out to live subscribers.
package notify

import (
	"context"
	"errors"
	"sync"
)

// DefaultMaxSubscribers bounds the registry when no limit is configured.
const DefaultMaxSubscribers = 1024

// ErrRegistryFull is returned by Register when the registry is at capacity.
var ErrRegistryFull = errors.New("notify: subscriber registry is full")

// Subscriber is a live outbound channel identified by a stable handle.
// Send must respect ctx; an error marks the subscriber dead.
type Subscriber interface {
	ID() string
	Send(ctx context.Context, msg []byte) error
	Close() error
}

// Registry is the concurrency-safe set of currently connected subscribers.
type Registry struct {
	mu   sync.RWMutex
	subs map[string]Subscriber
	max  int
}

// NewRegistry creates an empty registry holding at most max subscribers.
// max <= 0 selects DefaultMaxSubscribers.
func NewRegistry(max int) *Registry {
	if max <= 0 {
		max = DefaultMaxSubscribers
	}
	return &Registry{subs: make(map[string]Subscriber), max: max}
}

// Register adds sub. Registering an ID that is already present is a no-op.
func (r *Registry) Register(sub Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[sub.ID()]; ok {
		return nil
	}
	if len(r.subs) >= r.max {
		return ErrRegistryFull
	}
	r.subs[sub.ID()] = sub
	return nil
}

// Unregister removes the subscriber with the given ID and reports whether
// it was present. Removing an unknown ID is a no-op.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[id]; !ok {
		return false
	}
	delete(r.subs, id)
	return true
}

// Snapshot returns the subscribers registered at the time of the call.
// The returned slice is owned by the caller.
func (r *Registry) Snapshot() []Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Subscriber, 0, len(r.subs))
	for _, s := range r.subs {
		out = append(out, s)
	}
	return out
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// Cap returns the maximum number of subscribers.
func (r *Registry) Cap() int { return r.max }
