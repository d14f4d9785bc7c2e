package handlers

import (
	"encoding/json"
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"Filmoteka/models"
	"Filmoteka/services"
)

var searchTmpl *template.Template

func init() {
	var err error
	searchTmpl, err = template.New("search").Funcs(GetFuncMap()).ParseFiles(
		templatePath("layouts/base.html"),
		templatePath("pages/search.html"),
	)
	if err != nil {
		log.Fatal("Failed to parse search template:", err)
	}
}

type SearchData struct {
	BaseData
	Query   string
	Results []models.MediaItem
}

func SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	results, err := services.Search(query)
	if err != nil {
		slog.Error("Error running search", "query", query, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := SearchData{
		BaseData: newBaseData(w, r, "/search/"),
		Query:    query,
		Results:  results,
	}

	if err := searchTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering search template", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type suggestionsResponse struct {
	Results []services.Suggestion `json:"results"`
}

// SearchSuggestionsHandler returns the bounded autocomplete payload. Always
// JSON, always 200, an empty query just yields an empty result list.
func SearchSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	suggestions, err := services.Suggest(query)
	if err != nil {
		slog.Error("Error building suggestions", "query", query, "error", err)
		suggestions = nil
	}
	if suggestions == nil {
		suggestions = []services.Suggestion{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(suggestionsResponse{Results: suggestions}); err != nil {
		slog.Error("Error encoding suggestions", "error", err)
	}
}
