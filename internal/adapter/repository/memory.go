package repository

import (
	"context"
	"sync"

	"resume-optimizer/internal/domain"
)

// MemoryResumeRepo keeps resumes in process memory. Used when no database is
// configured; contents are lost on restart.
type MemoryResumeRepo struct {
	mu      sync.RWMutex
	resumes map[string]domain.Resume
}

func NewMemoryResumeRepo() *MemoryResumeRepo {
	return &MemoryResumeRepo{resumes: map[string]domain.Resume{}}
}

func (r *MemoryResumeRepo) Save(ctx context.Context, res *domain.Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := *res
	cp.Suggestions = cloneSuggestions(res.Suggestions)
	r.mu.Lock()
	r.resumes[res.ID] = cp
	r.mu.Unlock()
	return nil
}

func (r *MemoryResumeRepo) Get(ctx context.Context, id string) (*domain.Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	res, ok := r.resumes[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrResumeNotFound
	}
	res.Suggestions = cloneSuggestions(res.Suggestions)
	return &res, nil
}

// cloneSuggestions copies s, never returning nil so records serialize as [].
func cloneSuggestions(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
