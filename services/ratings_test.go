package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateMediaRejectsInvalidScore(t *testing.T) {
	mock := setupMock(t)

	// No query may reach the database for an invalid score.
	assert.ErrorIs(t, RateMedia(1, 2, 0, ""), ErrInvalidScore)
	assert.ErrorIs(t, RateMedia(1, 2, 11, "чудово"), ErrInvalidScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateMediaUpserts(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectExec(`INSERT INTO ratings .*ON CONFLICT \(user_id, media_item_id\)`).
		WithArgs(int64(7), int64(42), 9, "шедевр").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, RateMedia(7, 42, 9, "шедевр"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRatingScopedToOwner(t *testing.T) {
	mock := setupMock(t)

	created := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, media_item_id, score, comment, created_at\s+FROM ratings WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "media_item_id", "score", "comment", "created_at"}).
			AddRow(5, 7, 42, 8, "добре", created))

	r, err := GetRating(5, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), r.MediaItemID)
	assert.Equal(t, 8, r.Score)

	// Someone else's rating reads as missing.
	mock.ExpectQuery(`FROM ratings WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "media_item_id", "score", "comment", "created_at"}))

	_, err = GetRating(5, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRatingNotOwned(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectExec(`UPDATE ratings SET score = \$1, comment = \$2 WHERE id = \$3 AND user_id = \$4`).
		WithArgs(6, "норм", int64(5), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, UpdateRating(5, 99, 6, "норм"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRatingRejectsInvalidScore(t *testing.T) {
	mock := setupMock(t)

	assert.ErrorIs(t, UpdateRating(5, 7, 0, ""), ErrInvalidScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRating(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectExec(`DELETE FROM ratings WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, DeleteRating(5, 7))

	mock.ExpectExec(`DELETE FROM ratings WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, DeleteRating(5, 99), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRatingMissingIsNil(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectQuery(`FROM ratings WHERE user_id = \$1 AND media_item_id = \$2`).
		WithArgs(int64(7), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "media_item_id", "score", "comment", "created_at"}))

	r, err := UserRating(7, 42)
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.NoError(t, mock.ExpectationsWereMet())
}
