package handlers

import (
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"unicode"

	"Filmoteka/models"
	"Filmoteka/services"
)

var profileTmpl *template.Template

func init() {
	var err error
	profileTmpl, err = template.New("profile").Funcs(GetFuncMap()).ParseFiles(
		templatePath("layouts/base.html"),
		templatePath("pages/profile.html"),
	)
	if err != nil {
		log.Fatal("Failed to parse profile template:", err)
	}
}

const maxAvatarSize = 5 << 20 // 5 MiB

type ProfileData struct {
	BaseData
	Profile         *models.Profile
	Email           string
	WatchlistCount  int
	RatingCount     int
	LatestWatchlist []models.WatchlistItem
	RecentRatings   []models.Rating
}

func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := GetCurrentUser(r)
	if err != nil || user == nil {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodPost {
		handleProfilePost(w, r, user)
		return
	}

	profile, err := services.GetOrCreateProfile(user.ID)
	if err != nil {
		slog.Error("Error loading profile", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := ProfileData{
		BaseData: newBaseData(w, r, "/profile/"),
		Profile:  profile,
		Email:    user.Email,
	}

	if data.WatchlistCount, err = services.CountWatchlist(user.ID); err != nil {
		slog.Error("Error counting watchlist", "user_id", user.ID, "error", err)
	}
	if data.RatingCount, err = services.CountUserRatings(user.ID); err != nil {
		slog.Error("Error counting ratings", "user_id", user.ID, "error", err)
	}
	if data.LatestWatchlist, err = services.RecentEntries(user.ID, 5); err != nil {
		slog.Error("Error loading recent watchlist", "user_id", user.ID, "error", err)
	}
	if data.RecentRatings, err = services.RecentUserRatings(user.ID, 5); err != nil {
		slog.Error("Error loading recent ratings", "user_id", user.ID, "error", err)
	}

	if err := profileTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering profile template", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func handleProfilePost(w http.ResponseWriter, r *http.Request, user *models.User) {
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		services.AddFlash(w, r, "Не вдалося обробити форму.")
		http.Redirect(w, r, "/profile/", http.StatusSeeOther)
		return
	}

	if username := r.FormValue("username"); username != "" && username != user.Username {
		if err := services.UpdateUsername(user.ID, username); err != nil {
			services.AddFlash(w, r, capitalizeError(err))
		} else {
			services.AddFlash(w, r, "Нікнейм оновлено.")
		}
		http.Redirect(w, r, "/profile/", http.StatusSeeOther)
		return
	}

	if r.FormValue("clear_avatar") != "" {
		if err := services.ClearAvatar(user.ID); err != nil {
			slog.Error("Error clearing avatar", "user_id", user.ID, "error", err)
			services.AddFlash(w, r, "Не вдалося видалити аватар.")
		} else {
			services.AddFlash(w, r, "Аватар видалено.")
		}
		http.Redirect(w, r, "/profile/", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		services.AddFlash(w, r, "Оберіть файл аватара.")
		http.Redirect(w, r, "/profile/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	if err := services.UpdateAvatar(user.ID, header.Filename, file); err != nil {
		slog.Error("Error updating avatar", "user_id", user.ID, "error", err)
		services.AddFlash(w, r, "Не вдалося оновити аватар.")
	} else {
		services.AddFlash(w, r, "Аватар оновлено.")
	}
	http.Redirect(w, r, "/profile/", http.StatusSeeOther)
}

func capitalizeError(err error) string {
	msg := err.Error()
	if msg == "" {
		return "Сталася помилка."
	}
	runes := []rune(msg)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes) + "."
}
