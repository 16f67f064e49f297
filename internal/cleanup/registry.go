// Package cleanup deletes exported files once their download window closes.
package cleanup

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Registry remembers which stored files must be deleted and when.
type Registry interface {
	Schedule(ctx context.Context, name string, at time.Time) error
	// Due lists names whose deletion time is at or before now.
	Due(ctx context.Context, now time.Time) ([]string, error)
	Done(ctx context.Context, name string) error
}

// MemoryRegistry is a process-local Registry. Scheduled deletions are lost on
// restart; the janitor's orphan sweep picks those files up later.
type MemoryRegistry struct {
	mu      sync.Mutex
	pending map[string]time.Time
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{pending: map[string]time.Time{}}
}

// Schedule records name for deletion at at. Rescheduling keeps the earlier time.
func (r *MemoryRegistry) Schedule(_ context.Context, name string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.pending[name]; ok && cur.Before(at) {
		return nil
	}
	r.pending[name] = at
	return nil
}

func (r *MemoryRegistry) Due(_ context.Context, now time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []string
	for name, at := range r.pending {
		if !at.After(now) {
			due = append(due, name)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return r.pending[due[i]].Before(r.pending[due[j]])
	})
	return due, nil
}

func (r *MemoryRegistry) Done(_ context.Context, name string) error {
	r.mu.Lock()
	delete(r.pending, name)
	r.mu.Unlock()
	return nil
}
