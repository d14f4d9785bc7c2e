package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"Filmoteka/database"
	"Filmoteka/models"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const userColumns = "id, username, email, password_hash, is_admin, created_at, updated_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser accepts a username or an email address as the identifier.
// Email lookup is case-insensitive.
func AuthenticateUser(identifier, password string) (*models.User, error) {
	user, err := scanUser(database.DB.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE username = $1 OR LOWER(email) = LOWER($1)",
		identifier,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// RegisterUser creates the account and synchronously provisions its profile,
// so every user has exactly one profile from the moment it exists.
func RegisterUser(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := scanUser(database.DB.QueryRow(
		"INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING "+userColumns,
		username, email, string(hashedPassword),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if _, err := GetOrCreateProfile(user.ID); err != nil {
		return nil, fmt.Errorf("failed to provision profile: %w", err)
	}

	return user, nil
}

func GetUserByID(userID int64) (*models.User, error) {
	user, err := scanUser(database.DB.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE id = $1",
		userID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user, nil
}

// UsernameExists reports whether a username is taken, case-insensitively.
func UsernameExists(username string) (bool, error) {
	var count int
	err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM users WHERE LOWER(username) = LOWER($1)",
		username,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

// UpdateUsername changes the user's nickname. The new name must be non-empty
// and unique among other users, case-insensitively.
func UpdateUsername(userID int64, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("нікнейм не може бути порожнім")
	}

	var count int
	err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM users WHERE LOWER(username) = LOWER($1) AND id <> $2",
		username, userID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return errors.New("такий нікнейм вже використовується")
	}

	_, err = database.DB.Exec(
		"UPDATE users SET username = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		username, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update username: %w", err)
	}
	return nil
}
