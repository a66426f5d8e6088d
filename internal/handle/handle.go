// Package handle implements the HTTP API consumed by the form frontend.
package handle

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tractorplan/internal/creds"
	"tractorplan/internal/history"
	"tractorplan/internal/plan"
)

type Handle struct {
	gen     *plan.Generator
	hist    *history.Store
	timeout time.Duration
	log     *zap.Logger
}

func New(gen *plan.Generator, hist *history.Store, timeout time.Duration, log *zap.Logger) *Handle {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Handle{gen: gen, hist: hist, timeout: timeout, log: log}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the single user-visible error shape. RawText carries the
// exact text that failed to parse, verbatim: diagnosability over polish.
type errorBody struct {
	Error   string   `json:"error"`
	Stage   string   `json:"stage"`
	Missing []string `json:"missing,omitempty"`
	RawText string   `json:"raw_text,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	var (
		vErr  *plan.ValidationError
		cErr  *creds.ConfigurationError
		bErr  *plan.BackendCallError
		upErr *plan.UnrecoverableParseError
	)
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: vErr.Error(), Stage: "validation", Missing: vErr.Missing})
	case errors.As(err, &cErr):
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: cErr.Error(), Stage: "configuration", Missing: cErr.Missing})
	case errors.As(err, &bErr):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: bErr.Error(), Stage: "backend"})
	case errors.As(err, &upErr):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: upErr.Err.Error(), Stage: "parse", RawText: upErr.Text})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error(), Stage: "internal"})
	}
}
