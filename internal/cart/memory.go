package cart

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps carts in process memory; used by tests and available as
// a fallback when no database is wired.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[uuid.UUID]map[uuid.UUID]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[uuid.UUID]map[uuid.UUID]Item)}
}

func (s *MemoryStore) Items(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, 0, len(s.carts[userID]))
	for _, it := range s.carts[userID] {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID.String() < items[j].ProductID.String()
	})
	return items, nil
}

func (s *MemoryStore) Get(ctx context.Context, userID, productID uuid.UUID) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it, ok := s.carts[userID][productID]; ok {
		return &it, nil
	}
	return nil, nil
}

func (s *MemoryStore) Put(ctx context.Context, userID uuid.UUID, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.carts[userID] == nil {
		s.carts[userID] = make(map[uuid.UUID]Item)
	}
	s.carts[userID][item.ProductID] = item
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts[userID], productID)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
