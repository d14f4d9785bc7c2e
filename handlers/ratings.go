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

var commentsTmpl *template.Template

func init() {
	var err error
	commentsTmpl, err = template.New("comments").Funcs(GetFuncMap()).ParseFiles(
		templatePath("layouts/base.html"),
		templatePath("pages/comments.html"),
	)
	if err != nil {
		log.Fatal("Failed to parse comments template:", err)
	}
}

// ownRatingRedirect resolves the rating owned by the requester and the URL
// to bounce back to. A rating that is missing or someone else's renders the
// 404 page, its existence is not revealed.
func ownRatingRedirect(w http.ResponseWriter, r *http.Request) (*models.Rating, string, bool) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		NotFoundHandler(w, r)
		return nil, "", false
	}

	user, err := GetCurrentUser(r)
	if err != nil || user == nil {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return nil, "", false
	}

	rating, err := services.GetRating(id, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			NotFoundHandler(w, r)
			return nil, "", false
		}
		slog.Error("Error loading rating", "rating_id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, "", false
	}

	fallback := "/media/" + strconv.FormatInt(rating.MediaItemID, 10) + "/"
	return rating, safeRedirectTarget(r, fallback), true
}

func UpdateRatingHandler(w http.ResponseWriter, r *http.Request) {
	rating, redirectURL, ok := ownRatingRedirect(w, r)
	if !ok {
		return
	}

	score, err := strconv.Atoi(r.FormValue("score"))
	if err != nil {
		services.AddFlash(w, r, "Оцінка має бути числом від 1 до 10.")
		http.Redirect(w, r, redirectURL, http.StatusSeeOther)
		return
	}

	if err := services.UpdateRating(rating.ID, rating.UserID, score, r.FormValue("comment")); err != nil {
		if errors.Is(err, services.ErrInvalidScore) {
			services.AddFlash(w, r, "Оцінка має бути числом від 1 до 10.")
		} else {
			slog.Error("Error updating rating", "rating_id", rating.ID, "error", err)
			services.AddFlash(w, r, "Не вдалося оновити відгук.")
		}
		http.Redirect(w, r, redirectURL, http.StatusSeeOther)
		return
	}

	services.AddFlash(w, r, "Відгук оновлено.")
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

func DeleteRatingHandler(w http.ResponseWriter, r *http.Request) {
	rating, redirectURL, ok := ownRatingRedirect(w, r)
	if !ok {
		return
	}

	if err := services.DeleteRating(rating.ID, rating.UserID); err != nil {
		slog.Error("Error deleting rating", "rating_id", rating.ID, "error", err)
		services.AddFlash(w, r, "Не вдалося видалити коментар.")
		http.Redirect(w, r, redirectURL, http.StatusSeeOther)
		return
	}

	services.AddFlash(w, r, "Коментар видалено.")
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

type CommentsData struct {
	BaseData
	Comments []models.Rating
}

// UserCommentsHandler lists the signed-in user's non-empty rating comments.
func UserCommentsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := GetCurrentUser(r)
	if err != nil || user == nil {
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	comments, err := services.UserComments(user.ID)
	if err != nil {
		slog.Error("Error loading user comments", "user_id", user.ID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := CommentsData{
		BaseData: newBaseData(w, r, "/comments/"),
		Comments: comments,
	}

	if err := commentsTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering comments template", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
