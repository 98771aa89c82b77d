// Package locks provides per-resource exclusive sections. Every
// mutation touching a resource's reservations, templates or blackouts
// runs inside its resource's section so concurrent writers cannot
// interleave between a conflict check and the write it guards.
package locks

import (
	"context"
	"sync"
)

// Registry hands out one lock per resource id. Waiters acquire in
// arrival order; a waiter whose context is cancelled leaves without
// having touched any state.
type Registry struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]chan struct{})}
}

// Resources is the process-wide registry used by the HTTP layer. All
// handlers that mutate a resource must go through this one so blackout
// edits and booking attempts serialize against each other.
var Resources = NewRegistry()

func (r *Registry) lockFor(key string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.locks[key]
	if !ok {
		// One entry per resource id; bounded by the number of resources.
		ch = make(chan struct{}, 1)
		r.locks[key] = ch
	}
	return ch
}

// Acquire blocks until the resource's exclusive section is free or ctx
// is cancelled. On success it returns the release function; the caller
// must invoke it exactly once.
func (r *Registry) Acquire(ctx context.Context, key string) (func(), error) {
	ch := r.lockFor(key)
	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
