package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectCounts(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`COUNT\(\*\) FILTER \(WHERE media_type = 'movie'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"all", "movies", "series", "anime"}).AddRow(3, 2, 1, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ratings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
}

func TestListPublishedUnknownSortFallsBack(t *testing.T) {
	mock := setupMock(t)
	expectCounts(mock)

	rows := sqlmock.NewRows(mediaItemColumns)
	mediaItemRow(rows, 1, "Дюна", "")
	mock.ExpectQuery(`WHERE m\.is_published = TRUE\s+GROUP BY m\.id\s+ORDER BY m\.created_at DESC`).
		WillReturnRows(rows)

	page, err := ListPublished(ListParams{Sort: "evil; DROP TABLE", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, SortNewest, page.Sort)
	assert.Len(t, page.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPublishedTypeFilter(t *testing.T) {
	mock := setupMock(t)
	expectCounts(mock)

	rows := sqlmock.NewRows(mediaItemColumns)
	mediaItemRow(rows, 2, "Тихе місце", "")
	mock.ExpectQuery(`WHERE m\.is_published = TRUE AND m\.media_type = \$1`).
		WithArgs("movie").
		WillReturnRows(rows)

	page, err := ListPublished(ListParams{Type: "movie", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "movie", page.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPublishedUnknownTypeBecomesAll(t *testing.T) {
	mock := setupMock(t)
	expectCounts(mock)

	mock.ExpectQuery(`WHERE m\.is_published = TRUE\s+GROUP`).
		WillReturnRows(sqlmock.NewRows(mediaItemColumns))

	page, err := ListPublished(ListParams{Type: "podcast", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "all", page.Type)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page.NumPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPublishedSearchRunsAfterFilters(t *testing.T) {
	mock := setupMock(t)
	expectCounts(mock)

	rows := sqlmock.NewRows(mediaItemColumns)
	mediaItemRow(rows, 1, "Дюна", "")
	mediaItemRow(rows, 2, "Тихе місце", "")
	mediaItemRow(rows, 3, "Дюна: Частина друга", "")
	mock.ExpectQuery(`WHERE m\.is_published = TRUE`).WillReturnRows(rows)

	page, err := ListPublished(ListParams{Query: "дюна", Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Дюна", page.Items[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPublishedMissing(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectQuery(`WHERE m\.id = \$1 AND m\.is_published = TRUE`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(mediaItemColumns))

	_, err := GetPublished(404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPublishedLoadsGenres(t *testing.T) {
	mock := setupMock(t)

	rows := sqlmock.NewRows(mediaItemColumns)
	mediaItemRow(rows, 7, "Дюна", "")
	mock.ExpectQuery(`WHERE m\.id = \$1 AND m\.is_published = TRUE`).
		WithArgs(int64(7)).
		WillReturnRows(rows)
	mock.ExpectQuery(`JOIN media_item_genres mg ON mg\.genre_id = g\.id`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(1, "Фантастика", "fantastyka"))

	item, err := GetPublished(7)
	require.NoError(t, err)
	require.Len(t, item.Genres, 1)
	assert.Equal(t, "Фантастика", item.Genres[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
