package services

import (
	"testing"

	"Filmoteka/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// setupMock swaps the shared connection for a sqlmock one and restores it
// when the test finishes.
func setupMock(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		db.Close()
	})
	return mock
}
