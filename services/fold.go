package services

import (
	"strings"

	"Filmoteka/models"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Fold normalizes a string for case-insensitive comparison using Unicode
// case folding, so Cyrillic and other non-ASCII titles compare correctly.
func Fold(s string) string {
	return folder.String(s)
}

// foldContains reports whether the already-folded needle occurs in haystack.
func foldContains(haystack, foldedNeedle string) bool {
	return strings.Contains(Fold(haystack), foldedNeedle)
}

// MatchesMediaItem tests the folded query against title, original title and
// description independently. A hit on any of the three is a match.
func MatchesMediaItem(item *models.MediaItem, foldedQuery string) bool {
	return foldContains(item.Title, foldedQuery) ||
		foldContains(item.OriginalTitle, foldedQuery) ||
		foldContains(item.Description, foldedQuery)
}

// FilterMediaItems keeps the items matching the raw query. An empty or
// whitespace-only query keeps everything.
func FilterMediaItems(items []models.MediaItem, query string) []models.MediaItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	folded := Fold(query)
	filtered := make([]models.MediaItem, 0, len(items))
	for i := range items {
		if MatchesMediaItem(&items[i], folded) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}
