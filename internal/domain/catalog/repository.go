package catalog

import (
	"context"
	"time"
)

// Repository is the system of record for products.
type Repository interface {
	ListActive(ctx context.Context) ([]Product, error)
	Upsert(ctx context.Context, product Product) (Product, error)
}

// Store caches the active product list.
type Store interface {
	GetProducts(ctx context.Context) ([]Product, bool, error)
	SaveProducts(ctx context.Context, products []Product, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
