package cleanup

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sync"
	"testing"
	"time"
)

type fakeStore struct {
	mu      sync.Mutex
	files   map[string]bool
	failFor string
	swept   time.Duration
}

func (s *fakeStore) Save(context.Context, string, io.Reader) error { return nil }
func (s *fakeStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("not used")
}
func (s *fakeStore) Exists(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[name], nil
}
func (s *fakeStore) Location(name string) string { return name }
func (s *fakeStore) Remove(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == s.failFor {
		return errors.New("disk busy")
	}
	delete(s.files, name)
	return nil
}
func (s *fakeStore) Sweep(_ context.Context, olderThan time.Duration) (int, error) {
	s.swept = olderThan
	return 2, nil
}

func TestMemoryRegistryDue(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	base := time.Unix(1_700_000_000, 0)

	reg.Schedule(ctx, "b.pdf", base.Add(2*time.Second))
	reg.Schedule(ctx, "a.pdf", base.Add(time.Second))
	reg.Schedule(ctx, "later.pdf", base.Add(time.Hour))
	// a later reschedule must not postpone an earlier deletion
	reg.Schedule(ctx, "a.pdf", base.Add(time.Hour))

	due, err := reg.Due(ctx, base.Add(2*time.Second))
	if err != nil {
		t.Fatalf("Due: %v", err)
	}
	if want := []string{"a.pdf", "b.pdf"}; !reflect.DeepEqual(due, want) {
		t.Fatalf("Due = %v, want %v", due, want)
	}

	reg.Done(ctx, "a.pdf")
	due, _ = reg.Due(ctx, base.Add(2*time.Second))
	if want := []string{"b.pdf"}; !reflect.DeepEqual(due, want) {
		t.Fatalf("Due after Done = %v, want %v", due, want)
	}
}

func TestJanitorRunOnce(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{files: map[string]bool{"a.pdf": true, "b.pdf": true, "c.pdf": true}, failFor: "b.pdf"}
	reg := NewMemoryRegistry()
	now := time.Unix(1_700_000_000, 0)

	reg.Schedule(ctx, "a.pdf", now.Add(-time.Second))
	reg.Schedule(ctx, "b.pdf", now.Add(-time.Second))
	reg.Schedule(ctx, "c.pdf", now.Add(time.Minute))

	j := NewJanitor(store, reg, JanitorConfig{})
	j.now = func() time.Time { return now }

	if n := j.RunOnce(ctx); n != 1 {
		t.Fatalf("removed %d, want 1", n)
	}
	if store.files["a.pdf"] {
		t.Fatalf("a.pdf should be gone")
	}
	if !store.files["b.pdf"] || !store.files["c.pdf"] {
		t.Fatalf("b.pdf and c.pdf should remain: %v", store.files)
	}
	due, _ := reg.Due(ctx, now)
	if want := []string{"b.pdf"}; !reflect.DeepEqual(due, want) {
		t.Fatalf("failed removal should stay scheduled, got %v", due)
	}
}

func TestJanitorSweep(t *testing.T) {
	store := &fakeStore{files: map[string]bool{}}
	j := NewJanitor(store, NewMemoryRegistry(), JanitorConfig{})
	if n := j.Sweep(context.Background()); n != 0 {
		t.Fatalf("sweep should be disabled without OrphanTTL, got %d", n)
	}

	j = NewJanitor(store, NewMemoryRegistry(), JanitorConfig{OrphanTTL: DefaultOrphanTTL})
	if n := j.Sweep(context.Background()); n != 2 || store.swept != DefaultOrphanTTL {
		t.Fatalf("Sweep = %d (ttl %v)", n, store.swept)
	}
}

func TestJanitorRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	j := NewJanitor(&fakeStore{files: map[string]bool{}}, NewMemoryRegistry(), JanitorConfig{Interval: time.Millisecond})
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
