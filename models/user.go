package models

import "time"

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Profile struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	Avatar string `db:"avatar"` // path relative to MEDIA_ROOT, empty when unset
}

// AvatarURL returns the public URL for the stored avatar, or "" when none is set.
func (p *Profile) AvatarURL() string {
	if p.Avatar == "" {
		return ""
	}
	return "/media-files/" + p.Avatar
}
