package database

import (
	"fmt"
	"math/rand"

	"Filmoteka/config"

	"golang.org/x/crypto/bcrypt"
)

func SeedAdminUser(cfg *config.Config) error {
	// If no password is set, skip seeding (operator should set ADMIN_PASSWORD)
	if cfg.AdminPassword == "" {
		return nil
	}

	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users WHERE username = $1", cfg.AdminUsername).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin user: %w", err)
	}

	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var userID int64
	err = DB.QueryRow(
		"INSERT INTO users (username, email, password_hash, is_admin) VALUES ($1, $2, $3, $4) RETURNING id",
		cfg.AdminUsername,
		cfg.AdminEmail,
		string(hashedPassword),
		true,
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	_, err = DB.Exec("INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING", userID)
	if err != nil {
		return fmt.Errorf("failed to seed admin profile: %w", err)
	}

	return nil
}

var demoUsernames = []string{
	"sakura_fox",
	"midnight_owl",
	"pixel_wave",
	"movie_buff",
	"anime_leaf",
}

var demoComments = map[string][]string{
	"low": {
		"Ледь додивився, не зайшло.",
		"Сильно розчарований, більше не хочу дивитись.",
		"Сюжет нудний, довго йде до чогось.",
		"Гра акторів слабка, історія не чіпляє.",
		"Після середини хотілось вимкнути.",
	},
	"mid": {
		"Непогано, але без вау-ефекту.",
		"Місцями цікаво, місцями ні.",
		"Є сильні сцени, але загалом посередньо.",
		"Раз подивитись можна, вдруге навряд.",
		"Сюжет нормальний, але фінал підкачав.",
	},
	"high": {
		"Класний сюжет, дивився із задоволенням.",
		"Музика топ, візуал теж на рівні.",
		"Дивився на одному диханні.",
		"Хороший настрій після перегляду.",
		"Поки що найкраще, що бачив за рік.",
	},
}

// SeedDemoRatings creates demo users and seeds ratings with comments over
// random published media items. Writes are upserts, re-running does not
// duplicate anything.
func SeedDemoRatings() error {
	rows, err := DB.Query("SELECT id FROM media_items WHERE is_published = TRUE")
	if err != nil {
		return fmt.Errorf("failed to load published media items: %w", err)
	}
	defer rows.Close()

	var mediaIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan media item id: %w", err)
		}
		mediaIDs = append(mediaIDs, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate media items: %w", err)
	}

	if len(mediaIDs) == 0 {
		return fmt.Errorf("no published media items found to rate")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	total := 0
	for _, username := range demoUsernames {
		var userID int64
		err := DB.QueryRow(
			`INSERT INTO users (username, email, password_hash)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (username) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
			 RETURNING id`,
			username, username+"@example.com", string(hashedPassword),
		).Scan(&userID)
		if err != nil {
			return fmt.Errorf("failed to seed demo user %s: %w", username, err)
		}

		if _, err := DB.Exec("INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING", userID); err != nil {
			return fmt.Errorf("failed to seed profile for %s: %w", username, err)
		}

		sampleCount := min(10, len(mediaIDs))
		perm := rand.Perm(len(mediaIDs))
		for _, idx := range perm[:sampleCount] {
			score := rand.Intn(10) + 1
			var pool []string
			switch {
			case score <= 3:
				pool = demoComments["low"]
			case score <= 7:
				pool = demoComments["mid"]
			default:
				pool = demoComments["high"]
			}
			comment := pool[rand.Intn(len(pool))]

			_, err := DB.Exec(
				`INSERT INTO ratings (user_id, media_item_id, score, comment)
				 VALUES ($1, $2, $3, $4)
				 ON CONFLICT (user_id, media_item_id)
				 DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment, created_at = CURRENT_TIMESTAMP`,
				userID, mediaIDs[idx], score, comment,
			)
			if err != nil {
				return fmt.Errorf("failed to seed rating for %s: %w", username, err)
			}
			total++
		}
	}

	fmt.Printf("Seeded ratings complete. Total ratings set: %d\n", total)
	return nil
}
