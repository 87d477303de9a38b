package drafts

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store in memory. It is used in tests and when no
// draft database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]Draft
	now    func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]Draft), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, name, text string) (Draft, error) {
	name, err := normalizeName(name)
	if err != nil {
		return Draft{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var prev *Draft
	if d, ok := s.drafts[name]; ok {
		prev = &d
	}
	d := next(prev, name, text, s.now())
	s.drafts[name] = d
	return d, nil
}

func (s *MemoryStore) Load(_ context.Context, name string) (Draft, error) {
	name, err := normalizeName(name)
	if err != nil {
		return Draft{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[name]
	if !ok {
		return Draft{}, notFound(name)
	}
	return d, nil
}

func (s *MemoryStore) List(context.Context) ([]Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[name]; !ok {
		return notFound(name)
	}
	delete(s.drafts, name)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
