// Package api exposes the transcript and blog pipeline over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"jamesfarrell.me/youtube-to-blog/internal/api/handlers"
	"jamesfarrell.me/youtube-to-blog/internal/api/middleware"
)

type Deps struct {
	Transcripts handlers.TranscriptFetcher
	Blogs       handlers.BlogGenerator // nil disables POST /blogs
	APIKey      string
	Logger      *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	// Public routes
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	// Protected routes
	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.APIKey(d.APIKey))

	transcripts := handlers.NewTranscriptHandler(d.Transcripts, logger)
	protected.HandleFunc("/transcripts", transcripts.Fetch).Methods(http.MethodPost)

	blogs := handlers.NewBlogHandler(d.Blogs, logger)
	protected.HandleFunc("/blogs", blogs.Generate).Methods(http.MethodPost)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
