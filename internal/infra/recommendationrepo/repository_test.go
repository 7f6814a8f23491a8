package recommendationrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
)

func twenty() *int {
	v := 20
	return &v
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	term := twenty()
	draft := recommendation.Draft{
		Category:       recommendation.TermLife,
		TermYears:      term,
		CoverageAmount: 500000,
		MonthlyPremium: 320,
		Explanation:    "baseline",
	}
	rec, err := repo.Create(context.Background(), draft)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, rec.ID)
	require.Equal(t, fixed, rec.CreatedAt)

	*term = 99
	got, found, err := repo.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 20, *got.TermYears)

	_, found, err = repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	require.False(t, found)

	sub := recommendation.Submission{
		Profile:          recommendation.UserProfile{Age: 25, Income: 100000, RiskTolerance: recommendation.RiskHigh},
		RecommendationID: rec.ID,
	}
	require.NoError(t, repo.RecordSubmission(context.Background(), sub))
	require.Equal(t, []recommendation.Submission{sub}, repo.Submissions())
}

func TestMemoryRepositoryReturnsDetachedTerm(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	rec, err := repo.Create(ctx, recommendation.Draft{Category: recommendation.TermLife, TermYears: twenty()})
	require.NoError(t, err)
	*rec.TermYears = 10

	got, found, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 20, *got.TermYears)
	*got.TermYears = 30

	again, _, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, 20, *again.TermYears)
}

func TestMemoryRepositoryKeepsNilTerm(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	rec, err := repo.Create(ctx, recommendation.Draft{Category: recommendation.WholeLife})
	require.NoError(t, err)
	got, _, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Nil(t, got.TermYears)
}

func TestPostgresRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO recommendations")).
		WithArgs("term", 500000.0, int64(20), 320.0, "baseline").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), created))

	repo := NewPostgresRepository(db)
	rec, err := repo.Create(context.Background(), recommendation.Draft{
		Category:       recommendation.TermLife,
		TermYears:      twenty(),
		CoverageAmount: 500000,
		MonthlyPremium: 320,
		Explanation:    "baseline",
	})
	require.NoError(t, err)
	require.Equal(t, id, rec.ID)
	require.Equal(t, created, rec.CreatedAt)
	require.Equal(t, recommendation.TermLife, rec.Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryCreateWithoutTerm(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO recommendations")).
		WithArgs("whole", 900000.0, nil, 5670.0, "permanent").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New().String(), time.Now()))

	rec, err := NewPostgresRepository(db).Create(context.Background(), recommendation.Draft{
		Category:       recommendation.WholeLife,
		CoverageAmount: 900000,
		MonthlyPremium: 5670,
		Explanation:    "permanent",
	})
	require.NoError(t, err)
	require.Nil(t, rec.TermYears)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryCreateFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO recommendations")).WillReturnError(dbErr)

	_, err = NewPostgresRepository(db).Create(context.Background(), recommendation.Draft{Category: recommendation.TermLife})
	require.ErrorIs(t, err, dbErr)
}

func TestPostgresRepositoryGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	columns := []string{"id", "product_type", "coverage_amount", "term_years", "monthly_premium", "explanation", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM recommendations")).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "term", 800000.0, int64(30), 704.0, "dependents", created))

	repo := NewPostgresRepository(db)
	rec, found, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, id, rec.ID)
	require.Equal(t, recommendation.TermLife, rec.Category)
	require.Equal(t, 30, *rec.TermYears)
	require.Equal(t, 800000.0, rec.CoverageAmount)
	require.Equal(t, 704.0, rec.MonthlyPremium)
	require.Equal(t, created, rec.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta("FROM recommendations")).
		WillReturnRows(sqlmock.NewRows(columns))
	_, found, err = repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryRecordSubmission(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	recID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_submissions")).
		WithArgs(35, 100000.0, 2, "high", recID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewPostgresRepository(db).RecordSubmission(context.Background(), recommendation.Submission{
		Profile:          recommendation.UserProfile{Age: 35, Income: 100000, Dependents: 2, RiskTolerance: recommendation.RiskHigh},
		RecommendationID: recID,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
