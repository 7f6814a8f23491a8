package recommendationrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
)

// PostgresRepository implements recommendation.Repository on Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the draft; the database assigns id and created_at.
func (r *PostgresRepository) Create(ctx context.Context, draft recommendation.Draft) (recommendation.Recommendation, error) {
	rec := recommendation.Recommendation{Draft: draft}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO recommendations (product_type, coverage_amount, term_years, monthly_premium, explanation)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, string(draft.Category), draft.CoverageAmount, nullableInt(draft.TermYears), draft.MonthlyPremium, draft.Explanation)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return recommendation.Recommendation{}, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

// Get fetches by primary key.
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (recommendation.Recommendation, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, product_type, coverage_amount::float8, term_years, monthly_premium::float8, explanation, created_at
		FROM recommendations
		WHERE id = $1
	`, id)
	var (
		rec      recommendation.Recommendation
		category string
		term     sql.NullInt32
	)
	err := row.Scan(&rec.ID, &category, &rec.CoverageAmount, &term, &rec.MonthlyPremium, &rec.Explanation, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return recommendation.Recommendation{}, false, nil
	}
	if err != nil {
		return recommendation.Recommendation{}, false, err
	}
	rec.Category = recommendation.ProductCategory(category)
	if term.Valid {
		years := int(term.Int32)
		rec.TermYears = &years
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, true, nil
}

// RecordSubmission stores the applicant input linked to its recommendation.
func (r *PostgresRepository) RecordSubmission(ctx context.Context, submission recommendation.Submission) error {
	p := submission.Profile
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_submissions (age, income, dependents, risk_tolerance, recommendation_id)
		VALUES ($1, $2, $3, $4, $5)
	`, p.Age, p.Income, p.Dependents, string(p.RiskTolerance), submission.RecommendationID)
	return err
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

var _ recommendation.Repository = (*PostgresRepository)(nil)
