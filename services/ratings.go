package services

import (
	"database/sql"
	"errors"
	"fmt"

	"Filmoteka/database"
	"Filmoteka/models"
)

// ErrInvalidScore is returned for scores outside 1..10. Validation happens
// here, before the storage constraint ever sees the value.
var ErrInvalidScore = errors.New("score must be between 1 and 10")

// RateMedia creates or replaces the requester's rating for a media item.
// The (user, media_item) uniqueness lives in the database, so concurrent
// duplicate submissions collapse into a single row.
func RateMedia(userID, mediaID int64, score int, comment string) error {
	if score < 1 || score > 10 {
		return ErrInvalidScore
	}

	_, err := database.DB.Exec(
		`INSERT INTO ratings (user_id, media_item_id, score, comment)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, media_item_id)
		 DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment`,
		userID, mediaID, score, comment,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

// GetRating loads a rating only when it belongs to the requester.
// Someone else's rating is indistinguishable from a missing one.
func GetRating(ratingID, userID int64) (*models.Rating, error) {
	var r models.Rating
	err := database.DB.QueryRow(
		`SELECT id, user_id, media_item_id, score, comment, created_at
		 FROM ratings WHERE id = $1 AND user_id = $2`,
		ratingID, userID,
	).Scan(&r.ID, &r.UserID, &r.MediaItemID, &r.Score, &r.Comment, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query rating: %w", err)
	}
	return &r, nil
}

// UpdateRating rewrites score and comment on the requester's own rating.
func UpdateRating(ratingID, userID int64, score int, comment string) error {
	if score < 1 || score > 10 {
		return ErrInvalidScore
	}

	res, err := database.DB.Exec(
		"UPDATE ratings SET score = $1, comment = $2 WHERE id = $3 AND user_id = $4",
		score, comment, ratingID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRating removes the requester's own rating. Permanent.
func DeleteRating(ratingID, userID int64) error {
	res, err := database.DB.Exec(
		"DELETE FROM ratings WHERE id = $1 AND user_id = $2",
		ratingID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UserRating returns the requester's rating for one item, or nil when the
// item has not been rated yet.
func UserRating(userID, mediaID int64) (*models.Rating, error) {
	var r models.Rating
	err := database.DB.QueryRow(
		`SELECT id, user_id, media_item_id, score, comment, created_at
		 FROM ratings WHERE user_id = $1 AND media_item_id = $2`,
		userID, mediaID,
	).Scan(&r.ID, &r.UserID, &r.MediaItemID, &r.Score, &r.Comment, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user rating: %w", err)
	}
	return &r, nil
}

// RatingsForMedia lists an item's ratings with usernames, newest first.
func RatingsForMedia(mediaID int64) ([]models.Rating, error) {
	rows, err := database.DB.Query(
		`SELECT r.id, r.user_id, r.media_item_id, r.score, r.comment, r.created_at, u.username
		 FROM ratings r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.media_item_id = $1
		 ORDER BY r.created_at DESC`,
		mediaID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query media ratings: %w", err)
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.UserID, &r.MediaItemID, &r.Score, &r.Comment, &r.CreatedAt, &r.Username); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// UserComments lists the requester's ratings that carry a non-empty comment,
// newest first, with the rated item's title and type joined in.
func UserComments(userID int64) ([]models.Rating, error) {
	rows, err := database.DB.Query(
		`SELECT r.id, r.user_id, r.media_item_id, r.score, r.comment, r.created_at,
		        m.title, m.media_type
		 FROM ratings r
		 JOIN media_items m ON m.id = r.media_item_id
		 WHERE r.user_id = $1 AND r.comment <> ''
		 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query user comments: %w", err)
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.UserID, &r.MediaItemID, &r.Score, &r.Comment, &r.CreatedAt, &r.MediaTitle, &r.MediaType); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// RecentUserRatings returns the requester's latest ratings for the profile page.
func RecentUserRatings(userID int64, limit int) ([]models.Rating, error) {
	rows, err := database.DB.Query(
		`SELECT r.id, r.user_id, r.media_item_id, r.score, r.comment, r.created_at,
		        m.title, m.media_type
		 FROM ratings r
		 JOIN media_items m ON m.id = r.media_item_id
		 WHERE r.user_id = $1
		 ORDER BY r.created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent ratings: %w", err)
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.UserID, &r.MediaItemID, &r.Score, &r.Comment, &r.CreatedAt, &r.MediaTitle, &r.MediaType); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

func CountUserRatings(userID int64) (int, error) {
	var count int
	err := database.DB.QueryRow("SELECT COUNT(*) FROM ratings WHERE user_id = $1", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count user ratings: %w", err)
	}
	return count, nil
}
