package catalog

import (
	"context"
	"log/slog"

	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
	apperrors "github.com/yanqian/policy-advisor/pkg/errors"
)

// Error codes returned by the catalog service.
const (
	CodeInvalidCategory = "invalid_category"
	CodeNotFound        = "not_found"
	CodeCatalogError    = "catalog_error"
)

// Service exposes the product catalog.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	ByCategory(ctx context.Context, category string) ([]Product, error)
	Seed(ctx context.Context) ([]Product, error)
}

type service struct {
	cfg    Config
	repo   Repository
	store  Store
	logger *slog.Logger
}

// NewService wires up the catalog domain.
func NewService(cfg Config, repo Repository, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		store:  store,
		logger: logger.With("component", "catalog.service"),
	}
}

// List returns active products, reading through the cache. Cache errors
// are logged and bypassed.
func (s *service) List(ctx context.Context) ([]Product, error) {
	if cached, ok, err := s.store.GetProducts(ctx); err != nil {
		s.logger.Warn("catalog cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Wrap(CodeCatalogError, "list products", err)
	}
	if err := s.store.SaveProducts(ctx, products, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("catalog cache write failed", "error", err)
	}
	return products, nil
}

func (s *service) ByCategory(ctx context.Context, code string) ([]Product, error) {
	category, ok := recommendation.ParseCategory(code)
	if !ok {
		return nil, apperrors.Wrap(CodeInvalidCategory, "unknown product category "+code, nil)
	}
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return nil, apperrors.Wrap(CodeNotFound, "no products in category "+code, nil)
	}
	return matched, nil
}

// Seed upserts DefaultProducts and drops the cached list.
func (s *service) Seed(ctx context.Context) ([]Product, error) {
	defaults := DefaultProducts()
	seeded := make([]Product, 0, len(defaults))
	for _, p := range defaults {
		stored, err := s.repo.Upsert(ctx, p)
		if err != nil {
			return nil, apperrors.Wrap(CodeCatalogError, "seed product "+p.Name, err)
		}
		seeded = append(seeded, stored)
	}
	if err := s.store.Invalidate(ctx); err != nil {
		s.logger.Warn("catalog cache invalidate failed", "error", err)
	}
	s.logger.Info("catalog seeded", "products", len(seeded))
	return seeded, nil
}
