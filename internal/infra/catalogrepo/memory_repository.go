package catalogrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/yanqian/policy-advisor/internal/domain/catalog"
	"github.com/yanqian/policy-advisor/pkg/util"
)

type productKey struct {
	category string
	name     string
}

// MemoryRepository is an in-memory catalog.Repository used for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[productKey]catalog.Product
}

// NewMemoryRepository constructs a repository pre-loaded with products.
func NewMemoryRepository(seed ...catalog.Product) *MemoryRepository {
	r := &MemoryRepository{products: make(map[productKey]catalog.Product)}
	for _, p := range seed {
		_, _ = r.Upsert(context.Background(), p)
	}
	return r
}

// ListActive implements catalog.Repository.
func (r *MemoryRepository) ListActive(_ context.Context) ([]catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Upsert implements catalog.Repository keyed by category and name.
func (r *MemoryRepository) Upsert(_ context.Context, product catalog.Product) (catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := productKey{category: string(product.Category), name: product.Name}
	if existing, ok := r.products[key]; ok {
		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
	} else {
		product.ID = uuid.New()
		product.CreatedAt = util.NowUTC()
	}
	product.TermOptions = append([]int(nil), product.TermOptions...)
	r.products[key] = product
	return product, nil
}

var _ catalog.Repository = (*MemoryRepository)(nil)
