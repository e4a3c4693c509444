package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nijaru/video-api/errors"
	"github.com/nijaru/video-api/models"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var videoColumns = []string{"id", "name", "views", "likes"}

func ptr[T any](v T) *T { return &v }

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *Repository, context.Context) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(func() {
		cancel()
		mock.Close()
	})

	return mock, NewRepository(mock), ctx
}

func TestRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		video   *models.Video
		setup   func(mock pgxmock.PgxPoolIface)
		checkFn func(t *testing.T, err error)
	}{
		{
			name:  "successful creation",
			video: &models.Video{ID: 1, Name: "Test Video", Views: 10, Likes: 2},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(insertVideoSQL)).
					WithArgs(int64(1), "Test Video", int64(10), int64(2)).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			checkFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:  "duplicate id",
			video: &models.Video{ID: 1, Name: "Test Video", Views: 10, Likes: 2},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(insertVideoSQL)).
					WithArgs(int64(1), "Test Video", int64(10), int64(2)).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "videos_pkey"})
			},
			checkFn: func(t *testing.T, err error) {
				assert.True(t, errors.IsConflict(err))
			},
		},
		{
			name:  "check violation",
			video: &models.Video{ID: 1, Name: "Test Video", Views: -1, Likes: 2},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(insertVideoSQL)).
					WithArgs(int64(1), "Test Video", int64(-1), int64(2)).
					WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "videos_views_check"})
			},
			checkFn: func(t *testing.T, err error) {
				assert.True(t, errors.IsInvalidInput(err))
			},
		},
		{
			name:  "database error",
			video: &models.Video{ID: 1, Name: "Test Video", Views: 10, Likes: 2},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(insertVideoSQL)).
					WithArgs(int64(1), "Test Video", int64(10), int64(2)).
					WillReturnError(assert.AnError)
			},
			checkFn: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Equal(t, 500, errors.CodeOf(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo, ctx := newMock(t)
			tt.setup(mock)

			tt.checkFn(t, repo.Create(ctx, tt.video))

			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

func TestRepository_Find(t *testing.T) {
	t.Run("video found", func(t *testing.T) {
		mock, repo, ctx := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(getVideoSQL)).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(videoColumns).AddRow(int64(7), "Seven", int64(700), int64(70)))

		got, err := repo.Find(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, &models.Video{ID: 7, Name: "Seven", Views: 700, Likes: 70}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("video not found", func(t *testing.T) {
		mock, repo, ctx := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(getVideoSQL)).
			WithArgs(int64(8)).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Find(ctx, 8)
		assert.True(t, errors.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ListAndCount(t *testing.T) {
	mock, repo, ctx := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(listVideosSQL)).
		WithArgs(5, 5).
		WillReturnRows(pgxmock.NewRows(videoColumns).
			AddRow(int64(6), "v6", int64(600), int64(60)).
			AddRow(int64(7), "v7", int64(700), int64(70)))
	mock.ExpectQuery(regexp.QuoteMeta(countVideosSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	videos, err := repo.List(ctx, 5, 5)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, int64(6), videos[0].ID)
	assert.Equal(t, int64(7), videos[1].ID)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListEmpty(t *testing.T) {
	mock, repo, ctx := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(listVideosSQL)).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(videoColumns))

	videos, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
}

func TestRepository_Update(t *testing.T) {
	t.Run("views only", func(t *testing.T) {
		mock, repo, ctx := newMock(t)
		patch := models.VideoPatch{Views: ptr(int64(50))}

		mock.ExpectQuery(regexp.QuoteMeta(updateVideoSQL)).
			WithArgs(int64(1), (*string)(nil), ptr(int64(50)), (*int64)(nil)).
			WillReturnRows(pgxmock.NewRows(videoColumns).AddRow(int64(1), "Test Video", int64(50), int64(2)))

		got, err := repo.Update(ctx, 1, patch)
		require.NoError(t, err)
		assert.Equal(t, &models.Video{ID: 1, Name: "Test Video", Views: 50, Likes: 2}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing video", func(t *testing.T) {
		mock, repo, ctx := newMock(t)

		mock.ExpectQuery(regexp.QuoteMeta(updateVideoSQL)).
			WithArgs(int64(9), ptr("x"), (*int64)(nil), (*int64)(nil)).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Update(ctx, 9, models.VideoPatch{Name: ptr("x")})
		assert.True(t, errors.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		mock, repo, ctx := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteVideoSQL)).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(ctx, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing video", func(t *testing.T) {
		mock, repo, ctx := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteVideoSQL)).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.True(t, errors.IsNotFound(repo.Delete(ctx, 1)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHandlePostgreSQLError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, 409},
		{"check violation", &pgconn.PgError{Code: "23514"}, 400},
		{"not null violation", &pgconn.PgError{Code: "23502"}, 400},
		{"connection failure", &pgconn.PgError{Code: "08006"}, 500},
		{"unknown code", &pgconn.PgError{Code: "XX000"}, 500},
		{"not a pg error", assert.AnError, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := handlePostgreSQLError(tt.err, "op", 1)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}

	assert.Nil(t, handlePostgreSQLError(nil, "op", 1))
}
