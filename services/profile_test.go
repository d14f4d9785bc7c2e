package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Filmoteka/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMediaRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, InitMediaStorage(&config.Config{MediaRoot: root}))
	return root
}

func expectProfile(mock sqlmock.Sqlmock, userID int64, avatar string) {
	mock.ExpectQuery(`INSERT INTO profiles \(user_id\) VALUES \(\$1\)`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "avatar"}).AddRow(1, userID, avatar))
}

func writeAvatarFile(t *testing.T, root, relPath string) string {
	t.Helper()
	fullPath := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(t, os.WriteFile(fullPath, []byte("old"), 0o644))
	return fullPath
}

func TestUpdateAvatarReplacesOldFile(t *testing.T) {
	mock := setupMock(t)
	root := setupMediaRoot(t)

	oldPath := writeAvatarFile(t, root, "avatars/old.png")

	expectProfile(mock, 7, "avatars/old.png")
	mock.ExpectExec(`UPDATE profiles SET avatar = \$1 WHERE user_id = \$2`).
		WithArgs(sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, UpdateAvatar(7, "me.PNG", strings.NewReader("new-bytes")))

	// The old file is gone and exactly one new avatar exists.
	_, err := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(filepath.Join(root, "avatars"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".png"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAvatarKeepsFileWhenDatabaseFails(t *testing.T) {
	mock := setupMock(t)
	root := setupMediaRoot(t)

	oldPath := writeAvatarFile(t, root, "avatars/old.png")

	expectProfile(mock, 7, "avatars/old.png")
	mock.ExpectExec(`UPDATE profiles SET avatar`).
		WithArgs(sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := UpdateAvatar(7, "me.jpg", strings.NewReader("new-bytes"))
	assert.ErrorIs(t, err, ErrNotFound)

	// The previous avatar survives a failed update, the new file is rolled back.
	_, statErr := os.Stat(oldPath)
	assert.NoError(t, statErr)
	entries, readErr := os.ReadDir(filepath.Join(root, "avatars"))
	require.NoError(t, readErr)
	assert.Len(t, entries, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearAvatar(t *testing.T) {
	mock := setupMock(t)
	root := setupMediaRoot(t)

	oldPath := writeAvatarFile(t, root, "avatars/old.png")

	expectProfile(mock, 7, "avatars/old.png")
	mock.ExpectExec(`UPDATE profiles SET avatar = \$1 WHERE user_id = \$2`).
		WithArgs("", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, ClearAvatar(7))
	_, err := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearAvatarNoopWhenEmpty(t *testing.T) {
	mock := setupMock(t)
	setupMediaRoot(t)

	expectProfile(mock, 7, "")
	require.NoError(t, ClearAvatar(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportRemoteAvatarStoresFile(t *testing.T) {
	mock := setupMock(t)
	root := setupMediaRoot(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("avatar-bytes"))
	}))
	defer srv.Close()

	expectProfile(mock, 7, "")
	mock.ExpectExec(`UPDATE profiles SET avatar`).
		WithArgs(sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ImportRemoteAvatar(context.Background(), 7, srv.URL+"/pic.png?size=128")

	entries, err := os.ReadDir(filepath.Join(root, "avatars"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "remote_7_"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".png"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportRemoteAvatarNeverOverwrites(t *testing.T) {
	mock := setupMock(t)
	setupMediaRoot(t)

	// The server must never be contacted when an avatar already exists.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request to avatar source")
	}))
	defer srv.Close()

	expectProfile(mock, 7, "avatars/existing.png")
	ImportRemoteAvatar(context.Background(), 7, srv.URL+"/pic.png")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportRemoteAvatarSwallowsHTTPErrors(t *testing.T) {
	mock := setupMock(t)
	root := setupMediaRoot(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	expectProfile(mock, 7, "")
	ImportRemoteAvatar(context.Background(), 7, srv.URL+"/pic.png")

	entries, err := os.ReadDir(filepath.Join(root, "avatars"))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
