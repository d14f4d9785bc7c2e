package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"time"

	"Filmoteka/config"
	"Filmoteka/database"
	"Filmoteka/handlers"
	"Filmoteka/logger"
	"Filmoteka/middleware"
	"Filmoteka/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v3"
)

func main() {
	seedDemo := flag.Bool("seed-demo", false, "seed demo users and ratings, then exit")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.Debug)

	slog.Info("Initializing Filmoteka components")

	services.InitSessionStore(cfg)
	if err := services.InitMediaStorage(cfg); err != nil {
		log.Fatal("Failed to initialize media storage:", err)
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := database.SeedAdminUser(cfg); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	if *seedDemo {
		if err := database.SeedDemoRatings(); err != nil {
			log.Fatal("Failed to seed demo ratings:", err)
		}
		return
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger.Default(), &httplog.Options{
		Level:         slog.LevelInfo,
		RecoverPanics: true,
	}))

	r.NotFound(handlers.NotFoundHandler)

	// Static assets and uploaded media
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	r.Handle("/media-files/*", http.StripPrefix("/media-files/", http.FileServer(http.Dir(cfg.MediaRoot))))

	// Public pages
	r.Get("/", handlers.HomeHandler)
	r.Get("/catalog/", handlers.CatalogHandler)
	r.Get("/media/{id}/", handlers.MediaDetailHandler)
	r.Get("/search/", handlers.SearchHandler)
	r.Get("/search/suggestions/", handlers.SearchSuggestionsHandler)

	// Account lifecycle
	r.Get("/register/", handlers.RegisterHandler)
	r.Post("/register/", handlers.RegisterHandler)
	r.Get("/login/", handlers.LoginHandler)
	r.Post("/login/", handlers.LoginHandler)
	r.Get("/logout/", handlers.LogoutHandler)
	r.Post("/logout/", handlers.LogoutHandler)

	// Signed-in area
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/media/{id}/rate/", handlers.RateMediaHandler)
		r.Post("/media/{id}/watchlist/", handlers.ToggleWatchlistHandler)
		r.Post("/ratings/{id}/update/", handlers.UpdateRatingHandler)
		r.Post("/ratings/{id}/delete/", handlers.DeleteRatingHandler)
		r.Get("/profile/", handlers.ProfileHandler)
		r.Post("/profile/", handlers.ProfileHandler)
		r.Get("/watchlist/", handlers.UserWatchlistHandler)
		r.Get("/comments/", handlers.UserCommentsHandler)
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	slog.Info("Filmoteka server starting", "port", cfg.ServerPort, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server error:", err)
	}
}
