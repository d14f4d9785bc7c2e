package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"Filmoteka/database"
	"Filmoteka/models"
)

// ErrNotFound covers lookups that must behave like a 404: missing rows and
// rows the requester is not allowed to see.
var ErrNotFound = errors.New("not found")

const (
	SortNewest      = "-created_at"
	SortTitle       = "title"
	SortReleaseYear = "-release_year"
	SortAvgRating   = "-avg_rating"
)

// orderings whitelists the supported sort keys. Anything else silently
// falls back to SortNewest, bad query strings never produce errors.
var orderings = map[string]string{
	SortNewest:      "m.created_at DESC",
	SortTitle:       "m.title ASC",
	SortReleaseYear: "m.release_year DESC",
	SortAvgRating:   "avg_rating DESC",
}

const mediaItemSelect = `
	SELECT m.id, m.title, m.original_title, m.description, m.media_type,
	       m.release_year, m.country, m.duration, m.poster, m.trailer_url,
	       m.is_published, m.created_at, m.updated_at,
	       COALESCE(AVG(r.score), 0) AS avg_rating,
	       COUNT(r.id) AS rating_count
	FROM media_items m
	LEFT JOIN ratings r ON r.media_item_id = m.id`

func scanMediaItems(rows *sql.Rows) ([]models.MediaItem, error) {
	var items []models.MediaItem
	for rows.Next() {
		var m models.MediaItem
		err := rows.Scan(
			&m.ID, &m.Title, &m.OriginalTitle, &m.Description, &m.MediaType,
			&m.ReleaseYear, &m.Country, &m.Duration, &m.Poster, &m.TrailerURL,
			&m.IsPublished, &m.CreatedAt, &m.UpdatedAt,
			&m.AvgRating, &m.RatingCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media item: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate media items: %w", err)
	}
	return items, nil
}

type TypeCounts struct {
	All     int
	Movies  int
	Series  int
	Anime   int
	Ratings int
}

// CountsByType counts published items per media type plus total ratings.
func CountsByType() (*TypeCounts, error) {
	var counts TypeCounts
	err := database.DB.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE media_type = 'movie'),
		       COUNT(*) FILTER (WHERE media_type = 'series'),
		       COUNT(*) FILTER (WHERE media_type = 'anime')
		FROM media_items WHERE is_published = TRUE`,
	).Scan(&counts.All, &counts.Movies, &counts.Series, &counts.Anime)
	if err != nil {
		return nil, fmt.Errorf("failed to count media items: %w", err)
	}

	if err := database.DB.QueryRow("SELECT COUNT(*) FROM ratings").Scan(&counts.Ratings); err != nil {
		return nil, fmt.Errorf("failed to count ratings: %w", err)
	}

	return &counts, nil
}

// LatestByType returns the newest published items of one media type.
func LatestByType(mediaType string, limit int) ([]models.MediaItem, error) {
	rows, err := database.DB.Query(
		mediaItemSelect+`
		WHERE m.is_published = TRUE AND m.media_type = $1
		GROUP BY m.id
		ORDER BY m.created_at DESC
		LIMIT $2`,
		mediaType, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest %s items: %w", mediaType, err)
	}
	defer rows.Close()

	return scanMediaItems(rows)
}

// GetPublished loads one published media item with its genres.
// Unpublished and missing items both come back as ErrNotFound.
func GetPublished(id int64) (*models.MediaItem, error) {
	rows, err := database.DB.Query(
		mediaItemSelect+`
		WHERE m.id = $1 AND m.is_published = TRUE
		GROUP BY m.id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query media item: %w", err)
	}
	defer rows.Close()

	items, err := scanMediaItems(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}

	item := items[0]
	genres, err := genresForMedia(item.ID)
	if err != nil {
		return nil, err
	}
	item.Genres = genres
	return &item, nil
}

func genresForMedia(mediaID int64) ([]models.Genre, error) {
	rows, err := database.DB.Query(`
		SELECT g.id, g.name, g.slug
		FROM genres g
		JOIN media_item_genres mg ON mg.genre_id = g.id
		WHERE mg.media_item_id = $1
		ORDER BY g.name`,
		mediaID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// AllGenres lists every genre ordered by name, for the catalog sidebar.
func AllGenres() ([]models.Genre, error) {
	rows, err := database.DB.Query("SELECT id, name, slug FROM genres ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

type ListParams struct {
	Type      string
	GenreSlug string
	Sort      string
	Query     string
	Page      int
}

type CatalogPage struct {
	Items  []models.MediaItem
	Page   Page
	Counts *TypeCounts

	// Echoed back, normalized, for the template controls.
	Type      string
	GenreSlug string
	Sort      string
	Query     string
}

// ListPublished builds the filtered, sorted, paginated catalog listing.
// Database-level filters and sorting run first; the free-text search is a
// fold-insensitive substring pass in memory over the filtered rows only.
func ListPublished(params ListParams) (*CatalogPage, error) {
	counts, err := CountsByType()
	if err != nil {
		return nil, err
	}

	mediaType := params.Type
	if !models.ValidMediaType(mediaType) {
		mediaType = "all"
	}

	sortKey := params.Sort
	orderBy, ok := orderings[sortKey]
	if !ok {
		sortKey = SortNewest
		orderBy = orderings[SortNewest]
	}

	query := mediaItemSelect
	var conds []string
	var args []any

	if params.GenreSlug != "" {
		args = append(args, params.GenreSlug)
		query += fmt.Sprintf(`
		JOIN media_item_genres mg ON mg.media_item_id = m.id
		JOIN genres g ON g.id = mg.genre_id AND g.slug = $%d`, len(args))
	}

	conds = append(conds, "m.is_published = TRUE")
	if mediaType != "all" {
		args = append(args, mediaType)
		conds = append(conds, fmt.Sprintf("m.media_type = $%d", len(args)))
	}

	query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	query += "\n\t\tGROUP BY m.id\n\t\tORDER BY " + orderBy

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	items, err := scanMediaItems(rows)
	if err != nil {
		return nil, err
	}

	items = FilterMediaItems(items, params.Query)

	page := Paginate(len(items), params.Page)
	return &CatalogPage{
		Items:     items[page.Start:page.End],
		Page:      page,
		Counts:    counts,
		Type:      mediaType,
		GenreSlug: params.GenreSlug,
		Sort:      sortKey,
		Query:     strings.TrimSpace(params.Query),
	}, nil
}

// SeasonsForMedia lists seasons of an item plus the total episode count.
func SeasonsForMedia(mediaID int64) ([]models.Season, int, error) {
	rows, err := database.DB.Query(`
		SELECT id, media_item_id, season_number, title, release_year, episodes_count
		FROM seasons
		WHERE media_item_id = $1
		ORDER BY season_number`,
		mediaID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []models.Season
	totalEpisodes := 0
	for rows.Next() {
		var s models.Season
		if err := rows.Scan(&s.ID, &s.MediaItemID, &s.SeasonNumber, &s.Title, &s.ReleaseYear, &s.EpisodesCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan season: %w", err)
		}
		totalEpisodes += s.EpisodesCount
		seasons = append(seasons, s)
	}
	return seasons, totalEpisodes, rows.Err()
}
