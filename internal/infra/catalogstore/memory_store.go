package catalogstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/policy-advisor/internal/domain/catalog"
	"github.com/yanqian/policy-advisor/pkg/util"
)

// MemoryStore keeps the cached product list in process.
type MemoryStore struct {
	mu        sync.RWMutex
	now       util.Clock
	products  []catalog.Product
	cached    bool
	expiresAt time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: util.NowUTC}
}

// GetProducts implements catalog.Store.
func (s *MemoryStore) GetProducts(_ context.Context) ([]catalog.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.cached {
		return nil, false, nil
	}
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		return nil, false, nil
	}
	return append([]catalog.Product(nil), s.products...), true, nil
}

// SaveProducts implements catalog.Store. A non-positive ttl never expires.
func (s *MemoryStore) SaveProducts(_ context.Context, products []catalog.Product, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]catalog.Product(nil), products...)
	s.cached = true
	s.expiresAt = time.Time{}
	if ttl > 0 {
		s.expiresAt = s.now().Add(ttl)
	}
	return nil
}

// Invalidate implements catalog.Store.
func (s *MemoryStore) Invalidate(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.cached = false
	return nil
}

var _ catalog.Store = (*MemoryStore)(nil)
