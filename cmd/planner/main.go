package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"tractorplan/internal/config"
	"tractorplan/internal/creds"
	"tractorplan/internal/handle"
	"tractorplan/internal/history"
	"tractorplan/internal/httpserver"
	"tractorplan/internal/llm/gemini"
	"tractorplan/internal/logger"
	"tractorplan/internal/plan"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	// Prefer platform PORT env var; fallback to cfg.Port
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	}

	opt, err := creds.Resolve(creds.Source{
		APIKey:      cfg.GeminiAPIKey,
		SAJSON:      cfg.GoogleSAJSON,
		ProjectID:   cfg.GoogleProjectID,
		ClientEmail: cfg.GoogleClientEmail,
		PrivateKey:  cfg.GooglePrivateKey,
	})
	if err != nil {
		log.Fatal("credential resolution failed", zap.Error(err))
	}

	// One client per process lifetime, reused across requests.
	backend, err := gemini.New(context.Background(), log, opt)
	if err != nil {
		log.Fatal("gemini client", zap.Error(err))
	}
	defer func() { _ = backend.Close() }()

	gen := plan.NewGenerator(backend, cfg.GeminiModel, log)
	hist := history.NewStore(cfg.HistoryLimit)
	h := handle.New(gen, hist, cfg.RequestTimeout, log)

	addr := ":" + cfg.Port
	log.Info("planner listening", zap.String("addr", addr), zap.String("model", cfg.GeminiModel))
	if err := http.ListenAndServe(addr, httpserver.NewMux(h)); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
}
