package collection

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

const (
	reviewID      = "0196a3c2-7b10-7c3e-9a51-2f4d8e6b1a01"
	otherReviewID = "0196a3c2-7b10-7c3e-9a51-2f4d8e6b1a02"
)

func newMockSet(t *testing.T, now time.Time) (*Set, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSet(db, Postgres, WithClock(func() time.Time { return now })), mock
}

func reviewSchema(t *testing.T, s *Set) Schema {
	t.Helper()
	sc, ok := s.schemas[types.CollectionReviews]
	require.True(t, ok)
	return sc
}

func reviewRow(id, status string, created time.Time) []driver.Value {
	return []driver.Value{id, "p1", "c1", int64(5), "Harika", status, created, created}
}

func TestPostgres_SelectUsesNumberedPlaceholders(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s, mock := newMockSet(t, now)
	sc := reviewSchema(t, s)
	cols := columnList(sc.ColumnNames())

	mock.ExpectQuery(`SELECT ` + cols + ` FROM "reviews" WHERE "rating" = $1 AND "status" = $2 ORDER BY "created_at" DESC LIMIT 5`).
		WithArgs(int64(5), "pending").
		WillReturnRows(sqlmock.NewRows(sc.ColumnNames()).AddRow(reviewRow(reviewID, "pending", now)...))

	reviews, err := s.Collection(types.CollectionReviews)
	require.NoError(t, err)
	recs, err := reviews.Select(context.Background(), types.Query{
		Filter: map[string]any{"status": types.ReviewPending, "rating": 5},
		Order:  []types.OrderBy{{Field: "created_at", Desc: true}},
		Limit:  5,
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, reviewID, recs[0]["id"])
	assert.Equal(t, int64(5), recs[0]["rating"])
	assert.Equal(t, now, recs[0]["created_at"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateStampsAndRereads(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s, mock := newMockSet(t, now)
	sc := reviewSchema(t, s)

	mock.ExpectExec(`UPDATE "reviews" SET "status" = $1, "updated_at" = $2 WHERE "id" = $3`).
		WithArgs("approved", now, reviewID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT ` + columnList(sc.ColumnNames()) + ` FROM "reviews" WHERE "id" = $1`).
		WithArgs(reviewID).
		WillReturnRows(sqlmock.NewRows(sc.ColumnNames()).AddRow(reviewRow(reviewID, "approved", now)...))

	reviews, err := s.Collection(types.CollectionReviews)
	require.NoError(t, err)
	rec, err := reviews.Update(context.Background(), reviewID, types.Record{"status": types.ReviewApproved})
	require.NoError(t, err)
	assert.Equal(t, "approved", rec["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteErrors(t *testing.T) {
	s, mock := newMockSet(t, time.Now())
	reviews, err := s.Collection(types.CollectionReviews)
	require.NoError(t, err)

	mock.ExpectExec(`DELETE FROM "reviews" WHERE "id" = $1`).
		WithArgs(reviewID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, reviews.Delete(context.Background(), reviewID), types.ErrNotFound)

	mock.ExpectExec(`DELETE FROM "reviews" WHERE "id" = $1`).
		WithArgs(otherReviewID).
		WillReturnError(assert.AnError)
	err = reviews.Delete(context.Background(), otherReviewID)
	assert.ErrorIs(t, err, assert.AnError)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_MalformedKeysNeverReachTheServer(t *testing.T) {
	s, mock := newMockSet(t, time.Now())
	reviews, err := s.Collection(types.CollectionReviews)
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "42", "r1", reviewID + "x"} {
		t.Run(key, func(t *testing.T) {
			_, err := reviews.Get(ctx, key)
			assert.ErrorIs(t, err, types.ErrInvalidID)
			_, err = reviews.Update(ctx, key, types.Record{"status": types.ReviewApproved})
			assert.ErrorIs(t, err, types.ErrInvalidID)
			assert.ErrorIs(t, reviews.Delete(ctx, key), types.ErrInvalidID)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
