package catalogrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/yanqian/policy-advisor/internal/domain/catalog"
	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
)

// PostgresRepository implements catalog.Repository on the
// insurance_products table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListActive returns products flagged active.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, name, base_rate::float8, max_coverage::float8, min_age, max_age, term_options, is_active, created_at
		FROM insurance_products
		WHERE is_active
		ORDER BY type, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert inserts the product or updates the row with the same type and name.
func (r *PostgresRepository) Upsert(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO insurance_products (type, name, base_rate, max_coverage, min_age, max_age, term_options, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (type, name) DO UPDATE SET
			base_rate = EXCLUDED.base_rate,
			max_coverage = EXCLUDED.max_coverage,
			min_age = EXCLUDED.min_age,
			max_age = EXCLUDED.max_age,
			term_options = EXCLUDED.term_options,
			is_active = EXCLUDED.is_active
		RETURNING id, created_at
	`, string(p.Category), p.Name, p.BaseRate, p.MaxCoverage, p.MinAge, p.MaxAge, formatTerms(p.TermOptions), p.Active)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return catalog.Product{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (catalog.Product, error) {
	var (
		p        catalog.Product
		category string
		terms    sql.NullString
	)
	if err := row.Scan(&p.ID, &category, &p.Name, &p.BaseRate, &p.MaxCoverage, &p.MinAge, &p.MaxAge, &terms, &p.Active, &p.CreatedAt); err != nil {
		return catalog.Product{}, err
	}
	p.Category = recommendation.ProductCategory(category)
	p.CreatedAt = p.CreatedAt.UTC()
	if terms.Valid {
		parsed, err := parseTerms(terms.String)
		if err != nil {
			return catalog.Product{}, fmt.Errorf("product %s: %w", p.Name, err)
		}
		p.TermOptions = parsed
	}
	return p, nil
}

// parseTerms decodes the comma separated term_options column, e.g. "10,20,30".
func parseTerms(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		years, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid term option %q", part)
		}
		out = append(out, years)
	}
	return out, nil
}

func formatTerms(terms []int) any {
	if len(terms) == 0 {
		return nil
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ",")
}

var _ catalog.Repository = (*PostgresRepository)(nil)
