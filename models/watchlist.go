package models

import "time"

// Watchlist statuses. Each user holds at most one entry per media item.
const (
	WatchlistPlanned  = "planned"
	WatchlistWatched  = "watched"
	WatchlistFavorite = "favorite"
)

var watchlistStatusLabels = map[string]string{
	WatchlistPlanned:  "В планах",
	WatchlistWatched:  "Переглянуто",
	WatchlistFavorite: "Улюблене",
}

// WatchlistStatuses lists the valid statuses in display order.
var WatchlistStatuses = []string{WatchlistPlanned, WatchlistWatched, WatchlistFavorite}

func ValidWatchlistStatus(s string) bool {
	_, ok := watchlistStatusLabels[s]
	return ok
}

func WatchlistStatusLabel(s string) string {
	if label, ok := watchlistStatusLabels[s]; ok {
		return label
	}
	return s
}

type WatchlistItem struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	MediaItemID int64     `db:"media_item_id"`
	Status      string    `db:"status"`
	AddedAt     time.Time `db:"added_at"`

	Media MediaItem
}

func (w *WatchlistItem) StatusLabel() string {
	return WatchlistStatusLabel(w.Status)
}
