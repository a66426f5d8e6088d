// Package httpserver assembles the service mux.
package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tractorplan/internal/handle"
)

func NewMux(h *handle.Handle) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/plan", h.GeneratePlan)
	mux.HandleFunc("/v1/plan/history", h.History)
	mux.HandleFunc("/v1/plan/download", h.Download)
	return mux
}
