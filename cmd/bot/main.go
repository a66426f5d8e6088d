package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tractorplan/internal/config"
	"tractorplan/internal/creds"
	"tractorplan/internal/history"
	"tractorplan/internal/llm/gemini"
	"tractorplan/internal/logger"
	"tractorplan/internal/plan"
	"tractorplan/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

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

	backend, err := gemini.New(context.Background(), log, opt)
	if err != nil {
		log.Fatal("gemini client", zap.Error(err))
	}
	defer func() { _ = backend.Close() }()

	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is empty")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal("telegram bot", zap.Error(err))
	}
	bot.Debug = false

	r := &telegram.Router{
		Bot:     bot,
		Gen:     plan.NewGenerator(backend, cfg.GeminiModel, log),
		Hist:    history.NewStore(cfg.HistoryLimit),
		Models:  telegram.NewModelManager(cfg.GeminiModel),
		Timeout: cfg.RequestTimeout,
		Log:     log,
	}

	http.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	addr := "0.0.0.0:" + cfg.Port

	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		startWebhookMode(addr, bot, r, webhookURL, log)
		return
	}
	startPollingMode(addr, bot, r, log)
}

func startWebhookMode(addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string, log *zap.Logger) {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		log.Fatal("webhook config", zap.Error(err))
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		log.Fatal("webhook register", zap.Error(err))
	}

	// ListenForWebhook registers its handler on the DefaultServeMux.
	updates := bot.ListenForWebhook(path)
	go func() {
		for upd := range updates {
			r.HandleUpdate(upd)
		}
		log.Info("webhook updates channel closed")
	}()

	log.Info("webhook listening", zap.String("addr", addr), zap.String("path", path))
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
}

func startPollingMode(addr string, bot *tgbotapi.BotAPI, r *telegram.Router, log *zap.Logger) {
	go func() {
		log.Info("health server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Fatal("http server", zap.Error(err))
		}
	}()
	runPolling(context.Background(), bot, log, r.HandleUpdate)
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

// runPolling keeps long polling alive with backoff instead of dying on the
// first transient Telegram error.
func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, log *zap.Logger, handle func(tgbotapi.Update)) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30 // long polling timeout (sec)

	for {
		select {
		case <-ctx.Done():
			log.Info("polling: context cancelled")
			return
		default:
		}

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := retryDelayFromError(err)
			log.Warn("polling error", zap.Error(err), zap.Duration("retry_in", d))
			time.Sleep(d)
			continue
		}
		for _, upd := range updates {
			if upd.UpdateID >= u.Offset {
				u.Offset = upd.UpdateID + 1
			}
			handle(upd)
		}
	}
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:4])
}
