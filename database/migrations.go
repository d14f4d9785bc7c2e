package database

import (
	"fmt"
)

func RunMigrations() error {
	usersSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := DB.Exec(usersSQL); err != nil {
		return fmt.Errorf("failed to run users migration: %w", err)
	}

	profilesSQL := `
	CREATE TABLE IF NOT EXISTS profiles (
		id SERIAL PRIMARY KEY,
		user_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		avatar VARCHAR(255) DEFAULT ''
	);
	`
	if _, err := DB.Exec(profilesSQL); err != nil {
		return fmt.Errorf("failed to run profiles migration: %w", err)
	}

	genresSQL := `
	CREATE TABLE IF NOT EXISTS genres (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		slug VARCHAR(100) UNIQUE NOT NULL
	);
	`
	if _, err := DB.Exec(genresSQL); err != nil {
		return fmt.Errorf("failed to run genres migration: %w", err)
	}

	mediaItemsSQL := `
	CREATE TABLE IF NOT EXISTS media_items (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		original_title VARCHAR(255) DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		media_type VARCHAR(10) NOT NULL CHECK (media_type IN ('movie', 'series', 'anime')),
		release_year INTEGER NOT NULL,
		country VARCHAR(100) DEFAULT '',
		duration INTEGER DEFAULT 0,
		poster VARCHAR(255) DEFAULT '',
		trailer_url TEXT DEFAULT '',
		is_published BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_media_items_created_at ON media_items (created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_media_items_media_type ON media_items (media_type);
	`
	if _, err := DB.Exec(mediaItemsSQL); err != nil {
		return fmt.Errorf("failed to run media_items migration: %w", err)
	}

	mediaGenresSQL := `
	CREATE TABLE IF NOT EXISTS media_item_genres (
		id SERIAL PRIMARY KEY,
		media_item_id INTEGER NOT NULL REFERENCES media_items(id) ON DELETE CASCADE,
		genre_id INTEGER NOT NULL REFERENCES genres(id) ON DELETE CASCADE,
		UNIQUE (media_item_id, genre_id)
	);
	`
	if _, err := DB.Exec(mediaGenresSQL); err != nil {
		return fmt.Errorf("failed to run media_item_genres migration: %w", err)
	}

	seasonsSQL := `
	CREATE TABLE IF NOT EXISTS seasons (
		id SERIAL PRIMARY KEY,
		media_item_id INTEGER NOT NULL REFERENCES media_items(id) ON DELETE CASCADE,
		season_number INTEGER NOT NULL,
		title VARCHAR(255) DEFAULT '',
		release_year INTEGER NOT NULL,
		episodes_count INTEGER NOT NULL DEFAULT 0 CHECK (episodes_count >= 0),
		UNIQUE (media_item_id, season_number)
	);
	`
	if _, err := DB.Exec(seasonsSQL); err != nil {
		return fmt.Errorf("failed to run seasons migration: %w", err)
	}

	ratingsSQL := `
	CREATE TABLE IF NOT EXISTS ratings (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		media_item_id INTEGER NOT NULL REFERENCES media_items(id) ON DELETE CASCADE,
		score INTEGER NOT NULL CHECK (score >= 1 AND score <= 10),
		comment TEXT DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, media_item_id)
	);
	`
	if _, err := DB.Exec(ratingsSQL); err != nil {
		return fmt.Errorf("failed to run ratings migration: %w", err)
	}

	watchlistSQL := `
	CREATE TABLE IF NOT EXISTS watchlist (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		media_item_id INTEGER NOT NULL REFERENCES media_items(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'planned' CHECK (status IN ('planned', 'watched', 'favorite')),
		added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, media_item_id)
	);
	`
	if _, err := DB.Exec(watchlistSQL); err != nil {
		return fmt.Errorf("failed to run watchlist migration: %w", err)
	}

	// Ensure user named 'admin' is actually an admin
	if _, err := DB.Exec("UPDATE users SET is_admin = TRUE WHERE username = 'admin'"); err != nil {
		return fmt.Errorf("failed to ensure admin user has admin flag: %w", err)
	}

	return nil
}
