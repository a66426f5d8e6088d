// Package telegram is the bot surface: a chat message with the
// brand/model/hours triple produces a maintenance plan.
package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tractorplan/internal/history"
	"tractorplan/internal/plan"
)

// ModelManager keeps a per-chat generation model override.
type ModelManager struct {
	def string
	m   sync.Map // chatID -> model name
}

func NewModelManager(defaultModel string) *ModelManager {
	return &ModelManager{def: defaultModel}
}

func (m *ModelManager) Get(chatID int64) string {
	if v, ok := m.m.Load(chatID); ok {
		return v.(string)
	}
	return m.def
}

func (m *ModelManager) Set(chatID int64, model string) {
	m.m.Store(chatID, model)
}

type Router struct {
	Bot     *tgbotapi.BotAPI
	Gen     *plan.Generator
	Hist    *history.Store
	Models  *ModelManager
	Timeout time.Duration
	Log     *zap.Logger
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}
	if txt := strings.TrimSpace(upd.Message.Text); txt != "" {
		r.handlePlanText(context.Background(), cid, txt)
	}
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Envíame «Marca; Modelo; Horas» (ej.: John Deere; 6120M; 250) y te devuelvo el plan de mantenimiento.\nComandos: /health, /modelo [nombre], /historial")
	case "health":
		r.send(cid, "✅ OK")
	case "modelo":
		arg := strings.TrimSpace(strings.TrimPrefix(upd.Message.Text, "/modelo"))
		if arg == "" {
			r.send(cid, "Modelo IA actual: "+r.Models.Get(cid))
			return
		}
		r.Models.Set(cid, arg)
		r.send(cid, "Ok, usaré el modelo: "+arg)
	case "historial":
		entries := r.Hist.List()
		if len(entries) == 0 {
			r.send(cid, "Sin planes todavía.")
			return
		}
		var b strings.Builder
		for _, e := range entries {
			b.WriteString(e.CreatedAt.Format("2006-01-02 15:04"))
			b.WriteString(" — ")
			b.WriteString(e.Marca + " " + e.Modelo)
			b.WriteString("\n")
		}
		r.send(cid, b.String())
	default:
		r.send(cid, "Comando desconocido. Prueba /start")
	}
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn("telegram send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
