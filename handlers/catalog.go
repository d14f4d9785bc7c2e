package handlers

import (
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"strconv"

	"Filmoteka/models"
	"Filmoteka/services"
)

var catalogTmpl *template.Template

func init() {
	var err error
	catalogTmpl, err = template.New("catalog").Funcs(GetFuncMap()).ParseFiles(
		templatePath("layouts/base.html"),
		templatePath("pages/catalog.html"),
	)
	if err != nil {
		log.Fatal("Failed to parse catalog template:", err)
	}
}

type CatalogData struct {
	BaseData
	*services.CatalogPage
	Genres        []models.Genre
	UserWatchlist map[int64]bool
}

// CatalogHandler renders the filtered, sorted, paginated listing. Unknown
// filter and sort values fall back to defaults, a bad query string is never
// an error here.
func CatalogHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))

	params := services.ListParams{
		Type:      q.Get("type"),
		GenreSlug: q.Get("genre"),
		Sort:      q.Get("sort"),
		Query:     q.Get("q"),
		Page:      page,
	}
	if params.Type == "" {
		params.Type = "all"
	}
	if params.Sort == "" {
		params.Sort = services.SortNewest
	}

	listing, err := services.ListPublished(params)
	if err != nil {
		slog.Error("Error listing catalog", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	genres, err := services.AllGenres()
	if err != nil {
		slog.Error("Error loading genres", "error", err)
	}

	data := CatalogData{
		BaseData:      newBaseData(w, r, "/catalog/"),
		CatalogPage:   listing,
		Genres:        genres,
		UserWatchlist: map[int64]bool{},
	}

	if user, err := GetCurrentUser(r); err == nil && user != nil {
		if ids, err := services.Ids(user.ID); err == nil {
			data.UserWatchlist = ids
		}
	}

	if err := catalogTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering catalog template", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
