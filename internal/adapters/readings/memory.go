package readings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/randomtoy/temple-go/internal/domain"
)

type memoryItem struct {
	reading domain.Reading
	expires time.Time
}

// MemoryStore keeps readings in process until their TTL passes.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]memoryItem
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]memoryItem),
	}
}

func (s *MemoryStore) Put(_ context.Context, r domain.Reading) error {
	if r.ID == "" {
		return fmt.Errorf("reading id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.items[r.ID] = memoryItem{reading: r, expires: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || !s.now().Before(item.expires) {
		return domain.Reading{}, domain.ErrReadingNotFound
	}
	return item.reading, nil
}

// sweep drops expired items; callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, item := range s.items {
		if !now.Before(item.expires) {
			delete(s.items, id)
		}
	}
}
