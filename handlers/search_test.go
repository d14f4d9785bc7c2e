package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mediaItemColumns = []string{
	"id", "title", "original_title", "description", "media_type",
	"release_year", "country", "duration", "poster", "trailer_url",
	"is_published", "created_at", "updated_at", "avg_rating", "rating_count",
}

func TestSearchSuggestionsEmptyQuery(t *testing.T) {
	mock := setupMock(t)

	req := httptest.NewRequest(http.MethodGet, "/search/suggestions/?q=", nil)
	rec := httptest.NewRecorder()
	SearchSuggestionsHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchSuggestionsPayload(t *testing.T) {
	mock := setupMock(t)

	now := time.Now()
	rows := sqlmock.NewRows(mediaItemColumns).
		AddRow(5, "Дюна", "Dune", "", "movie", 2021, "США", 155, "posters/dune.jpg", "",
			true, now, now, 8.4, 12)
	mock.ExpectQuery(`LIMIT \$1`).WithArgs(50).WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/search/suggestions/?q=дюна", nil)
	rec := httptest.NewRecorder()
	SearchSuggestionsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Results, 1)

	got := payload.Results[0]
	assert.Equal(t, "Дюна", got["title"])
	assert.Equal(t, "movie", got["type"])
	assert.Equal(t, "Фільм", got["type_label"])
	assert.Equal(t, "/media/5/", got["url"])
	assert.Equal(t, "/media-files/posters/dune.jpg", got["poster"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchSuggestionsErrorStillReturnsJSON(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectQuery(`LIMIT \$1`).WithArgs(50).WillReturnError(assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/search/suggestions/?q=дюна", nil)
	rec := httptest.NewRecorder()
	SearchSuggestionsHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotFoundHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/no/such/page/", nil)
	rec := httptest.NewRecorder()
	NotFoundHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}
