package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"projectmgr/internal/store"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	repo store.Repository
	log  zerolog.Logger
}

// New creates a new Handlers instance.
func New(repo store.Repository, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo: repo,
		log:  log,
	}
}

// APIError is the JSON body of every non-2xx response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Result is the JSON body returned by deletes and reassignments.
type Result struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// parseID extracts and parses an integer ID from URL parameters.
func parseID(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", param, idStr)
	}
	return id, nil
}

// decodeJSON reads the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, r *http.Request, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, r *http.Request, code int, message string) {
	respondJSON(w, r, code, APIError{
		Code:    codeFor(code),
		Message: message,
		Status:  code,
	})
}

// respondMutationError maps a repository error to a response. Only missing
// references reach here; store failures surface as a false result instead.
func respondMutationError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		respondError(w, r, http.StatusNotFound, nf.Error())
		return
	}
	respondServerError(w, r, err.Error())
}

func respondServerError(w http.ResponseWriter, r *http.Request, message string) {
	zerolog.Ctx(r.Context()).Error().Str("path", r.URL.Path).Msg(message)
	respondError(w, r, http.StatusInternalServerError, message)
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	default:
		return http.StatusText(status)
	}
}
