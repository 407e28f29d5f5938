package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"jamesfarrell.me/youtube-to-blog/internal/storage/models"
	"jamesfarrell.me/youtube-to-blog/internal/transcription"
)

type TranscriptFetcher interface {
	Fetch(ctx context.Context, req models.FetchRequest) (*models.Transcript, error)
}

type TranscriptHandler struct {
	fetcher TranscriptFetcher
	logger  *slog.Logger
}

func NewTranscriptHandler(fetcher TranscriptFetcher, logger *slog.Logger) *TranscriptHandler {
	return &TranscriptHandler{fetcher: fetcher, logger: logger}
}

func (h *TranscriptHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req models.TranscriptRequest
	if code, err := decodeJSON(w, r, maxTranscriptRequestBytes, &req); err != nil {
		writeError(w, code, err.Error(), string(transcription.StatusFailed))
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required", string(transcription.StatusFailed))
		return
	}

	t, err := h.fetcher.Fetch(r.Context(), models.FetchRequest{URL: req.URL, Language: strings.TrimSpace(req.Language)})
	if err != nil {
		writeError(w, statusCode(err), err.Error(), string(transcription.StatusOf(err)))
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func statusCode(err error) int {
	switch transcription.KindOf(err) {
	case transcription.KindInvalidInput:
		return http.StatusBadRequest
	case transcription.KindNoContent:
		return http.StatusNotFound
	case transcription.KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
