package recommendation

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists recommendations. Create assigns the ID and the
// creation timestamp.
type Repository interface {
	Create(ctx context.Context, draft Draft) (Recommendation, error)
	Get(ctx context.Context, id uuid.UUID) (Recommendation, bool, error)
	RecordSubmission(ctx context.Context, submission Submission) error
}
