package recommendation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/policy-advisor/pkg/errors"
	"github.com/yanqian/policy-advisor/pkg/metrics"
)

// Service exposes recommendation capabilities.
type Service interface {
	Recommend(ctx context.Context, profile UserProfile) (Recommendation, error)
	Get(ctx context.Context, id uuid.UUID) (Recommendation, error)
}

type service struct {
	engine  *Engine
	repo    Repository
	metrics *metrics.Recommendations
	logger  *slog.Logger
}

// NewService wires up the recommendation domain.
func NewService(engine *Engine, repo Repository, m *metrics.Recommendations, logger *slog.Logger) Service {
	return &service{
		engine:  engine,
		repo:    repo,
		metrics: m,
		logger:  logger.With("component", "recommendation.service"),
	}
}

// Recommend evaluates the profile and stores the result. Storage errors
// are returned to the caller without retrying.
func (s *service) Recommend(ctx context.Context, profile UserProfile) (Recommendation, error) {
	if err := profile.Validate(); err != nil {
		s.metrics.ObserveFailure(CodeInvalidProfile)
		return Recommendation{}, err
	}

	quote, err := s.engine.Evaluate(profile)
	if err != nil {
		s.metrics.ObserveFailure(CodeNoRuleMatched)
		return Recommendation{}, err
	}
	if quote.DefaultRateApplied {
		s.logger.Warn("no base rate configured for category, default rate applied", "category", quote.Category, "rule", quote.RuleID)
		s.metrics.ObserveDefaultRate(string(quote.Category))
	}

	rec, err := s.repo.Create(ctx, quote.Draft)
	if err != nil {
		s.metrics.ObserveFailure(CodePersistenceError)
		return Recommendation{}, apperrors.Wrap(CodePersistenceError, "store recommendation", err)
	}
	if err := s.repo.RecordSubmission(ctx, Submission{Profile: profile, RecommendationID: rec.ID}); err != nil {
		s.metrics.ObserveFailure(CodePersistenceError)
		return Recommendation{}, apperrors.Wrap(CodePersistenceError, "store submission", err)
	}

	s.metrics.ObserveIssued(string(rec.Category), quote.RuleID)
	s.logger.Info("recommendation issued",
		"id", rec.ID,
		"category", rec.Category,
		"rule", quote.RuleID,
		"coverage", rec.CoverageAmount,
		"premium", rec.MonthlyPremium,
	)
	return rec, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Recommendation, error) {
	rec, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return Recommendation{}, apperrors.Wrap(CodePersistenceError, "load recommendation", err)
	}
	if !found {
		return Recommendation{}, apperrors.Wrap(CodeNotFound, "recommendation not found", nil)
	}
	return rec, nil
}
