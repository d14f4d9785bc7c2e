package handlers

import (
	"html/template"
	"log"
	"log/slog"
	"net/http"
)

var notFoundTmpl *template.Template

func init() {
	var err error
	notFoundTmpl, err = template.New("notFound").Funcs(GetFuncMap()).ParseFiles(
		templatePath("layouts/base.html"),
		templatePath("pages/404.html"),
	)
	if err != nil {
		log.Fatal("Failed to parse 404 template:", err)
	}
}

// NotFoundHandler renders the custom 404 page. Every unmatched route lands
// here instead of the plain-text default.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	data := newBaseData(w, r, "")
	w.WriteHeader(http.StatusNotFound)
	if err := notFoundTmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering 404 template", "error", err)
	}
}
