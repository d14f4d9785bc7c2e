package models

import "time"

type Rating struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	MediaItemID int64     `db:"media_item_id"`
	Score       int       `db:"score"`
	Comment     string    `db:"comment"`
	CreatedAt   time.Time `db:"created_at"`

	// Joined fields for listings.
	Username   string
	MediaTitle string
	MediaType  string
}

func (r *Rating) MediaDetailURL() string {
	return (&MediaItem{ID: r.MediaItemID}).DetailURL()
}
