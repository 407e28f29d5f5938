package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"jamesfarrell.me/youtube-to-blog/internal/storage/models"
)

const (
	maxTranscriptRequestBytes = 64 << 10
	maxBlogRequestBytes       = 4 << 20
)

// decodeJSON reads at most limit bytes of r's body into v. It returns the
// status code to answer with when the body is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, err
		}
		return http.StatusBadRequest, err
	}
	return http.StatusOK, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, label string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg, Status: label})
}
