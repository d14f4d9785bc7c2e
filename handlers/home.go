package handlers

import (
	"html/template"
	"log"
	"log/slog"
	"net/http"

	"Filmoteka/models"
	"Filmoteka/services"
)

var homeTmpl *template.Template

func init() {
	var err error
	homeTmpl, err = template.New("home").Funcs(GetFuncMap()).ParseFiles(
		templatePath("layouts/base.html"),
		templatePath("pages/home.html"),
	)
	if err != nil {
		log.Fatal("Failed to parse home template:", err)
	}
}

type HomeData struct {
	BaseData
	LatestMovies []models.MediaItem
	LatestSeries []models.MediaItem
	LatestAnime  []models.MediaItem
	Counts       *services.TypeCounts
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	data := HomeData{BaseData: newBaseData(w, r, "/")}

	var err error
	if data.LatestMovies, err = services.LatestByType(models.MediaTypeMovie, 4); err != nil {
		slog.Error("Error loading latest movies", "error", err)
	}
	if data.LatestSeries, err = services.LatestByType(models.MediaTypeSeries, 4); err != nil {
		slog.Error("Error loading latest series", "error", err)
	}
	if data.LatestAnime, err = services.LatestByType(models.MediaTypeAnime, 4); err != nil {
		slog.Error("Error loading latest anime", "error", err)
	}
	if data.Counts, err = services.CountsByType(); err != nil {
		slog.Error("Error loading counts", "error", err)
		data.Counts = &services.TypeCounts{}
	}

	if err := homeTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering home template", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
