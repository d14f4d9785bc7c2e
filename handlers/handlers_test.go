package handlers

import (
	"os"
	"testing"

	"Filmoteka/config"
	"Filmoteka/database"
	"Filmoteka/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	services.InitSessionStore(&config.Config{SessionSecret: "test-secret"})
	os.Exit(m.Run())
}

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
