package handlers

import (
	"errors"
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"strconv"

	"Filmoteka/models"
	"Filmoteka/services"

	"github.com/go-chi/chi/v5"
)

var mediaDetailTmpl *template.Template

func init() {
	var err error
	mediaDetailTmpl, err = template.New("mediaDetail").Funcs(GetFuncMap()).ParseFiles(
		templatePath("layouts/base.html"),
		templatePath("pages/media_detail.html"),
	)
	if err != nil {
		log.Fatal("Failed to parse media detail template:", err)
	}
}

type MediaDetailData struct {
	BaseData
	Media           *models.MediaItem
	Seasons         []models.Season
	SeasonCount     int
	EpisodeCount    int
	Ratings         []models.Rating
	UserRating      *models.Rating
	InWatchlist     bool
	WatchlistStatus string
	Statuses        []string
}

func MediaDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		NotFoundHandler(w, r)
		return
	}

	media, err := services.GetPublished(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			NotFoundHandler(w, r)
			return
		}
		slog.Error("Error loading media item", "id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := MediaDetailData{
		BaseData:        newBaseData(w, r, "/catalog/"),
		Media:           media,
		WatchlistStatus: models.WatchlistPlanned,
		Statuses:        models.WatchlistStatuses,
	}

	if data.Seasons, data.EpisodeCount, err = services.SeasonsForMedia(id); err != nil {
		slog.Error("Error loading seasons", "id", id, "error", err)
	}
	data.SeasonCount = len(data.Seasons)

	if data.Ratings, err = services.RatingsForMedia(id); err != nil {
		slog.Error("Error loading ratings", "id", id, "error", err)
	}

	if user, err := GetCurrentUser(r); err == nil && user != nil {
		if data.UserRating, err = services.UserRating(user.ID, id); err != nil {
			slog.Error("Error loading user rating", "id", id, "error", err)
		}
		status, err := services.Entry(user.ID, id)
		if err != nil {
			slog.Error("Error loading watchlist entry", "id", id, "error", err)
		} else if status != "" {
			data.InWatchlist = true
			data.WatchlistStatus = status
		}
	}

	if err := mediaDetailTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering media detail template", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RateMediaHandler upserts the signed-in user's rating and bounces back to
// the detail page.
func RateMediaHandler(w http.ResponseWriter, r *http.Request) {
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

	detailURL := "/media/" + strconv.FormatInt(id, 10) + "/"

	score, err := strconv.Atoi(r.FormValue("score"))
	if err != nil {
		services.AddFlash(w, r, "Оцінка має бути числом від 1 до 10.")
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}
	comment := r.FormValue("comment")

	if err := services.RateMedia(user.ID, id, score, comment); err != nil {
		if errors.Is(err, services.ErrInvalidScore) {
			services.AddFlash(w, r, "Оцінка має бути числом від 1 до 10.")
		} else {
			slog.Error("Error saving rating", "media_id", id, "user_id", user.ID, "error", err)
			services.AddFlash(w, r, "Не вдалося зберегти оцінку.")
		}
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}

	services.AddFlash(w, r, "Відгук збережено.")
	http.Redirect(w, r, detailURL, http.StatusSeeOther)
}
