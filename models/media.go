package models

import (
	"strconv"
	"time"
)

// Media types accepted by the catalog. Anything else is rejected by the
// media_items CHECK constraint.
const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"
	MediaTypeAnime  = "anime"
)

// MediaTypes lists the valid types in display order.
var MediaTypes = []string{MediaTypeMovie, MediaTypeSeries, MediaTypeAnime}

var mediaTypeLabels = map[string]string{
	MediaTypeMovie:  "Фільм",
	MediaTypeSeries: "Серіал",
	MediaTypeAnime:  "Аніме",
}

func ValidMediaType(t string) bool {
	_, ok := mediaTypeLabels[t]
	return ok
}

// MediaTypeLabel returns the display label for a media type, or the raw
// value when it is not one of the known types.
func MediaTypeLabel(t string) string {
	if label, ok := mediaTypeLabels[t]; ok {
		return label
	}
	return t
}

type Genre struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Slug string `db:"slug"`
}

type MediaItem struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	OriginalTitle string    `db:"original_title"`
	Description   string    `db:"description"`
	MediaType     string    `db:"media_type"`
	ReleaseYear   int       `db:"release_year"`
	Country       string    `db:"country"`
	Duration      int       `db:"duration"` // minutes
	Poster        string    `db:"poster"`   // path relative to MEDIA_ROOT, empty when none
	TrailerURL    string    `db:"trailer_url"`
	IsPublished   bool      `db:"is_published"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	// Aggregates filled in by catalog queries.
	AvgRating   float64 `db:"avg_rating"`
	RatingCount int     `db:"rating_count"`

	Genres []Genre
}

func (m *MediaItem) TypeLabel() string {
	return MediaTypeLabel(m.MediaType)
}

// PosterURL returns the public URL for the stored poster, or "" when none.
func (m *MediaItem) PosterURL() string {
	if m.Poster == "" {
		return ""
	}
	return "/media-files/" + m.Poster
}

func (m *MediaItem) DetailURL() string {
	return "/media/" + strconv.FormatInt(m.ID, 10) + "/"
}

type Season struct {
	ID            int64  `db:"id"`
	MediaItemID   int64  `db:"media_item_id"`
	SeasonNumber  int    `db:"season_number"`
	Title         string `db:"title"`
	ReleaseYear   int    `db:"release_year"`
	EpisodesCount int    `db:"episodes_count"`
}
