package services

import (
	"fmt"
	"strings"

	"Filmoteka/database"
	"Filmoteka/models"
)

// suggestionCandidates bounds the suggestion scan to the newest published
// items so autocomplete latency stays flat as the catalog grows.
const (
	suggestionCandidates = 50
	suggestionLimit      = 8
)

// Search runs the full-page search: every published item, newest first,
// fold-filtered in memory. An empty query returns no results.
func Search(query string) ([]models.MediaItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	rows, err := database.DB.Query(
		mediaItemSelect + `
		WHERE m.is_published = TRUE
		GROUP BY m.id
		ORDER BY m.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query search candidates: %w", err)
	}
	defer rows.Close()

	items, err := scanMediaItems(rows)
	if err != nil {
		return nil, err
	}

	return FilterMediaItems(items, query), nil
}

type Suggestion struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	TypeLabel   string  `json:"type_label"`
	ReleaseYear int     `json:"release_year"`
	AvgRating   float64 `json:"avg_rating"`
	URL         string  `json:"url"`
	Poster      *string `json:"poster"`
}

// Suggest returns the autocomplete records for a query: at most
// suggestionLimit matches drawn from the suggestionCandidates most recently
// created published items.
func Suggest(query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	rows, err := database.DB.Query(
		mediaItemSelect+`
		WHERE m.is_published = TRUE
		GROUP BY m.id
		ORDER BY m.created_at DESC
		LIMIT $1`,
		suggestionCandidates,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestion candidates: %w", err)
	}
	defer rows.Close()

	items, err := scanMediaItems(rows)
	if err != nil {
		return nil, err
	}

	matches := FilterMediaItems(items, query)
	if len(matches) > suggestionLimit {
		matches = matches[:suggestionLimit]
	}

	suggestions := make([]Suggestion, 0, len(matches))
	for i := range matches {
		item := &matches[i]
		var poster *string
		if url := item.PosterURL(); url != "" {
			poster = &url
		}
		suggestions = append(suggestions, Suggestion{
			ID:          item.ID,
			Title:       item.Title,
			Type:        item.MediaType,
			TypeLabel:   item.TypeLabel(),
			ReleaseYear: item.ReleaseYear,
			AvgRating:   item.AvgRating,
			URL:         item.DetailURL(),
			Poster:      poster,
		})
	}
	return suggestions, nil
}
