package handlers

import (
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"strconv"

	"Filmoteka/services"

	"github.com/go-chi/chi/v5"
)

var watchlistTmpl *template.Template

func init() {
	var err error
	watchlistTmpl, err = template.New("watchlist").Funcs(GetFuncMap()).ParseFiles(
		templatePath("layouts/base.html"),
		templatePath("pages/watchlist.html"),
	)
	if err != nil {
		log.Fatal("Failed to parse watchlist template:", err)
	}
}

// ToggleWatchlistHandler adds, re-statuses or removes a watchlist entry for
// the signed-in user and bounces back to where the form was submitted.
func ToggleWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		NotFoundHandler(w, r)
		return
	}

	user, err := GetCurrentUser(r)
	if err != nil || user == nil {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	redirectURL := safeRedirectTarget(r, "/media/"+strconv.FormatInt(id, 10)+"/")

	if r.FormValue("remove") != "" {
		removed, err := services.Remove(user.ID, id)
		if err != nil {
			slog.Error("Error removing watchlist entry", "media_id", id, "user_id", user.ID, "error", err)
		} else if removed {
			services.AddFlash(w, r, "Видалено зі списку перегляду.")
		}
		http.Redirect(w, r, redirectURL, http.StatusSeeOther)
		return
	}

	existing, err := services.Entry(user.ID, id)
	if err != nil {
		slog.Error("Error checking watchlist entry", "media_id", id, "user_id", user.ID, "error", err)
	}

	changed, err := services.SetStatus(user.ID, id, r.FormValue("status"))
	if err != nil {
		slog.Error("Error updating watchlist", "media_id", id, "user_id", user.ID, "error", err)
		http.Redirect(w, r, redirectURL, http.StatusSeeOther)
		return
	}

	// Same status again is a no-op and reports nothing.
	if changed {
		if existing == "" {
			services.AddFlash(w, r, "Додано до списку перегляду.")
		} else {
			services.AddFlash(w, r, "Статус у списку перегляду оновлено.")
		}
	}

	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

type WatchlistData struct {
	BaseData
	*services.WatchlistPage
}

// UserWatchlistHandler renders the owner's filtered watchlist.
func UserWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	user, err := GetCurrentUser(r)
	if err != nil || user == nil {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	q := r.URL.Query()
	page, err := services.List(user.ID, services.WatchlistParams{
		Query:  q.Get("q"),
		Status: q.Get("status"),
		Type:   q.Get("type"),
	})
	if err != nil {
		slog.Error("Error loading watchlist", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := WatchlistData{
		BaseData:      newBaseData(w, r, "/watchlist/"),
		WatchlistPage: page,
	}

	if err := watchlistTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering watchlist template", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
