package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"Filmoteka/config"
	"Filmoteka/database"
	"Filmoteka/models"

	"github.com/google/uuid"
)

var mediaRoot string

// InitMediaStorage sets the directory uploaded files are stored under.
func InitMediaStorage(cfg *config.Config) error {
	mediaRoot = cfg.MediaRoot
	if err := os.MkdirAll(filepath.Join(mediaRoot, "avatars"), 0o755); err != nil {
		return fmt.Errorf("failed to create media root: %w", err)
	}
	return nil
}

// MediaRoot returns the configured upload directory.
func MediaRoot() string {
	return mediaRoot
}

// GetOrCreateProfile returns the user's profile, provisioning it when
// missing. Registration calls this synchronously so the profile always
// exists; the get-or-create here covers accounts that predate it.
func GetOrCreateProfile(userID int64) (*models.Profile, error) {
	var p models.Profile
	err := database.DB.QueryRow(
		`INSERT INTO profiles (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, user_id, avatar`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.Avatar)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create profile: %w", err)
	}
	return &p, nil
}

// UpdateAvatar stores a new avatar file under MEDIA_ROOT/avatars with a
// random name and points the profile at it. The previous file, if any and
// different, is deleted best-effort afterwards.
func UpdateAvatar(userID int64, originalFilename string, file io.Reader) error {
	profile, err := GetOrCreateProfile(userID)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext == "" {
		ext = ".jpg"
	}
	relPath := path.Join("avatars", uuid.NewString()+ext)

	if err := writeMediaFile(relPath, file); err != nil {
		return err
	}

	if err := setAvatar(userID, relPath); err != nil {
		removeMediaFile(relPath)
		return err
	}

	if profile.Avatar != "" && profile.Avatar != relPath {
		removeMediaFile(profile.Avatar)
	}
	return nil
}

// ClearAvatar removes the stored avatar file and nulls the reference.
func ClearAvatar(userID int64) error {
	profile, err := GetOrCreateProfile(userID)
	if err != nil {
		return err
	}
	if profile.Avatar == "" {
		return nil
	}
	if err := setAvatar(userID, ""); err != nil {
		return err
	}
	removeMediaFile(profile.Avatar)
	return nil
}

// ImportRemoteAvatar fetches an avatar from an external identity provider
// and stores it, but only when the user has no avatar yet. This is a
// non-critical enhancement: every failure is logged and swallowed, and an
// existing avatar is never overwritten.
func ImportRemoteAvatar(ctx context.Context, userID int64, avatarURL string) {
	if avatarURL == "" {
		return
	}

	profile, err := GetOrCreateProfile(userID)
	if err != nil {
		slog.Warn("Avatar import skipped: profile lookup failed", "user_id", userID, "error", err)
		return
	}
	if profile.Avatar != "" {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, avatarURL, nil)
	if err != nil {
		slog.Warn("Avatar import skipped: bad URL", "user_id", userID, "error", err)
		return
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Warn("Avatar import failed", "user_id", userID, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Avatar import failed", "user_id", userID, "status", resp.StatusCode)
		return
	}

	ext := path.Ext(strings.SplitN(avatarURL, "?", 2)[0])
	if ext == "" {
		ext = ".jpg"
	}
	relPath := path.Join("avatars", fmt.Sprintf("remote_%d_%s%s", userID, uuid.NewString()[:8], ext))

	if err := writeMediaFile(relPath, resp.Body); err != nil {
		slog.Warn("Avatar import failed to store file", "user_id", userID, "error", err)
		return
	}
	if err := setAvatar(userID, relPath); err != nil {
		removeMediaFile(relPath)
		slog.Warn("Avatar import failed to update profile", "user_id", userID, "error", err)
	}
}

func setAvatar(userID int64, relPath string) error {
	res, err := database.DB.Exec("UPDATE profiles SET avatar = $1 WHERE user_id = $2", relPath, userID)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check avatar update: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func writeMediaFile(relPath string, src io.Reader) error {
	fullPath := filepath.Join(mediaRoot, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write media file: %w", err)
	}
	return nil
}

// removeMediaFile deletes a stored file best-effort. A file that is already
// gone is not an error, and nothing here is transactional with the database.
func removeMediaFile(relPath string) {
	if relPath == "" {
		return
	}
	fullPath := filepath.Join(mediaRoot, filepath.FromSlash(relPath))
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to remove media file", "path", relPath, "error", err)
	}
}
