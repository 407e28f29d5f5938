package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"jamesfarrell.me/youtube-to-blog/internal/blog"
	"jamesfarrell.me/youtube-to-blog/internal/storage/models"
)

type BlogGenerator interface {
	Generate(ctx context.Context, transcript string) (string, error)
}

type BlogHandler struct {
	gen    BlogGenerator
	logger *slog.Logger
}

func NewBlogHandler(gen BlogGenerator, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{gen: gen, logger: logger}
}

func (h *BlogHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.gen == nil {
		writeError(w, http.StatusServiceUnavailable, "blog generation is not configured", "")
		return
	}

	var req models.BlogRequest
	if code, err := decodeJSON(w, r, maxBlogRequestBytes, &req); err != nil {
		writeError(w, code, err.Error(), "")
		return
	}

	md, err := h.gen.Generate(r.Context(), req.Transcript)
	switch {
	case errors.Is(err, blog.ErrEmptyTranscript):
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	case err != nil:
		h.logger.Error("blog generation failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, models.BlogResponse{Markdown: md})
}
