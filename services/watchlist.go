package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"Filmoteka/database"
	"Filmoteka/models"
)

// SetStatus adds a media item to the user's watchlist with the given status,
// or overwrites the status of an existing entry. Empty or unknown statuses
// fall back to planned. The returned flag is false when the entry already
// held the requested status, that case writes nothing.
func SetStatus(userID, mediaID int64, status string) (bool, error) {
	if !models.ValidWatchlistStatus(status) {
		status = models.WatchlistPlanned
	}

	res, err := database.DB.Exec(
		`INSERT INTO watchlist (user_id, media_item_id, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, media_item_id)
		 DO UPDATE SET status = EXCLUDED.status
		 WHERE watchlist.status IS DISTINCT FROM EXCLUDED.status`,
		userID, mediaID, status,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert watchlist entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check watchlist result: %w", err)
	}
	return affected > 0, nil
}

// Remove deletes the user's watchlist entry for a media item. The returned
// flag is false when there was nothing to remove.
func Remove(userID, mediaID int64) (bool, error) {
	res, err := database.DB.Exec(
		"DELETE FROM watchlist WHERE user_id = $1 AND media_item_id = $2",
		userID, mediaID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete watchlist entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return affected > 0, nil
}

// Entry returns the user's watchlist status for a media item, or "" when the
// item is not on the list.
func Entry(userID, mediaID int64) (string, error) {
	var status string
	err := database.DB.QueryRow(
		"SELECT status FROM watchlist WHERE user_id = $1 AND media_item_id = $2",
		userID, mediaID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query watchlist entry: %w", err)
	}
	return status, nil
}

// Ids returns the set of media item ids on the user's watchlist, used to
// mark catalog cards.
func Ids(userID int64) (map[int64]bool, error) {
	rows, err := database.DB.Query("SELECT media_item_id FROM watchlist WHERE user_id = $1", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

type WatchlistParams struct {
	Query  string
	Status string
	Type   string
}

type StatusTab struct {
	Value string
	Label string
	Count int
}

type WatchlistPage struct {
	Items []models.WatchlistItem
	Tabs  []StatusTab
	Total int

	// Normalized filter values for the template controls.
	Query  string
	Status string
	Type   string
}

const watchlistSelect = `
	SELECT w.id, w.user_id, w.media_item_id, w.status, w.added_at,
	       m.id, m.title, m.original_title, m.description, m.media_type,
	       m.release_year, m.country, m.duration, m.poster, m.trailer_url,
	       m.is_published, m.created_at, m.updated_at
	FROM watchlist w
	JOIN media_items m ON m.id = w.media_item_id`

func scanWatchlistItems(rows *sql.Rows) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem
	for rows.Next() {
		var w models.WatchlistItem
		m := &w.Media
		err := rows.Scan(
			&w.ID, &w.UserID, &w.MediaItemID, &w.Status, &w.AddedAt,
			&m.ID, &m.Title, &m.OriginalTitle, &m.Description, &m.MediaType,
			&m.ReleaseYear, &m.Country, &m.Duration, &m.Poster, &m.TrailerURL,
			&m.IsPublished, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watchlist items: %w", err)
	}
	return items, nil
}

// List builds the owner's filtered watchlist, newest additions first.
// Status and type filters run in SQL (unknown values fall back to "all"),
// the free-text search is the same fold-insensitive in-memory pass the
// catalog uses. The status tabs count the unfiltered list.
func List(userID int64, params WatchlistParams) (*WatchlistPage, error) {
	tabs := make([]StatusTab, 0, len(models.WatchlistStatuses))
	for _, status := range models.WatchlistStatuses {
		var count int
		err := database.DB.QueryRow(
			"SELECT COUNT(*) FROM watchlist WHERE user_id = $1 AND status = $2",
			userID, status,
		).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("failed to count watchlist status %s: %w", status, err)
		}
		tabs = append(tabs, StatusTab{Value: status, Label: models.WatchlistStatusLabel(status), Count: count})
	}

	status := params.Status
	if !models.ValidWatchlistStatus(status) {
		status = "all"
	}
	mediaType := params.Type
	if !models.ValidMediaType(mediaType) {
		mediaType = "all"
	}

	query := watchlistSelect
	conds := []string{"w.user_id = $1"}
	args := []any{userID}

	if status != "all" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("w.status = $%d", len(args)))
	}
	if mediaType != "all" {
		args = append(args, mediaType)
		conds = append(conds, fmt.Sprintf("m.media_type = $%d", len(args)))
	}

	query += "\n\tWHERE " + strings.Join(conds, " AND ")
	query += "\n\tORDER BY w.added_at DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	items, err := scanWatchlistItems(rows)
	if err != nil {
		return nil, err
	}

	search := strings.TrimSpace(params.Query)
	if search != "" {
		folded := Fold(search)
		filtered := items[:0]
		for i := range items {
			if MatchesMediaItem(&items[i].Media, folded) {
				filtered = append(filtered, items[i])
			}
		}
		items = filtered
	}

	return &WatchlistPage{
		Items:  items,
		Tabs:   tabs,
		Total:  len(items),
		Query:  search,
		Status: status,
		Type:   mediaType,
	}, nil
}

// RecentEntries returns the latest additions for the profile page.
func RecentEntries(userID int64, limit int) ([]models.WatchlistItem, error) {
	rows, err := database.DB.Query(
		watchlistSelect+`
	WHERE w.user_id = $1
	ORDER BY w.added_at DESC
	LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent watchlist entries: %w", err)
	}
	defer rows.Close()

	return scanWatchlistItems(rows)
}

func CountWatchlist(userID int64) (int, error) {
	var count int
	err := database.DB.QueryRow("SELECT COUNT(*) FROM watchlist WHERE user_id = $1", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count watchlist: %w", err)
	}
	return count, nil
}
