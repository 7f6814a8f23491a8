package recommendationrepo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
	"github.com/yanqian/policy-advisor/pkg/util"
)

// MemoryRepository is an in-memory recommendation.Repository used for tests/dev.
type MemoryRepository struct {
	mu          sync.RWMutex
	now         util.Clock
	records     map[uuid.UUID]recommendation.Recommendation
	submissions []recommendation.Submission
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		now:     util.NowUTC,
		records: make(map[uuid.UUID]recommendation.Recommendation),
	}
}

// Create implements recommendation.Repository.
func (r *MemoryRepository) Create(_ context.Context, draft recommendation.Draft) (recommendation.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := recommendation.Recommendation{
		ID:        uuid.New(),
		Draft:     draft,
		CreatedAt: r.now(),
	}
	rec.TermYears = copyTerm(draft.TermYears)
	r.records[rec.ID] = rec
	return withTermCopy(rec), nil
}

// Get implements recommendation.Repository.
func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (recommendation.Recommendation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	return withTermCopy(rec), ok, nil
}

// RecordSubmission implements recommendation.Repository.
func (r *MemoryRepository) RecordSubmission(_ context.Context, submission recommendation.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, submission)
	return nil
}

// Submissions returns a copy of the recorded submissions.
func (r *MemoryRepository) Submissions() []recommendation.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]recommendation.Submission(nil), r.submissions...)
}

// withTermCopy detaches the returned record from the stored one.
func withTermCopy(rec recommendation.Recommendation) recommendation.Recommendation {
	rec.TermYears = copyTerm(rec.TermYears)
	return rec
}

func copyTerm(years *int) *int {
	if years == nil {
		return nil
	}
	v := *years
	return &v
}

var _ recommendation.Repository = (*MemoryRepository)(nil)
