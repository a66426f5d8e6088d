package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tractorplan/internal/plan"
)

// parseTriple splits "Marca; Modelo; Horas" into a plan input. Hours is
// optional and defaults to 250, same as the form.
func parseTriple(text string) (plan.Input, error) {
	parts := strings.Split(text, ";")
	if len(parts) < 2 {
		return plan.Input{}, errors.New("formato: Marca; Modelo; Horas")
	}
	in := plan.Input{
		Marca:  strings.TrimSpace(parts[0]),
		Modelo: strings.TrimSpace(parts[1]),
		Horas:  250,
	}
	if len(parts) >= 3 {
		h, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || h < 0 {
			return plan.Input{}, errors.New("horas debe ser un entero >= 0")
		}
		in.Horas = h
	}
	return in, nil
}

func (r *Router) handlePlanText(ctx context.Context, cid int64, text string) {
	in, err := parseTriple(text)
	if err != nil {
		r.send(cid, "No entendí la petición. "+err.Error())
		return
	}
	in.Options.Model = r.Models.Get(cid)

	r.send(cid, fmt.Sprintf("Calculando el plan para %s %s (%d h)…", in.Marca, in.Modelo, in.Horas))

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	p, err := r.Gen.Generate(ctx, in)
	if err != nil {
		// Raw model text on parse failure goes to the chat on purpose:
		// the operator debugs prompt drift from there.
		r.send(cid, "ERROR:\n"+err.Error())
		return
	}

	if unknown := p.UnknownSystems(); len(unknown) > 0 {
		r.Log.Warn("plan uses systems outside the enumeration",
			zap.Int64("chat_id", cid), zap.Strings("sistemas", unknown))
	}

	r.Hist.Add(in.Marca, in.Modelo, in.Horas, p)
	r.send(cid, summarize(p))

	body, err := p.Indent()
	if err != nil {
		r.Log.Error("marshal plan", zap.Error(err))
		return
	}
	doc := tgbotapi.NewDocument(cid, tgbotapi.FileBytes{
		Name:  plan.ArtifactName(in.Marca, in.Modelo, in.Horas),
		Bytes: body,
	})
	if _, err := r.Bot.Send(doc); err != nil {
		r.Log.Warn("telegram document send failed", zap.Int64("chat_id", cid), zap.Error(err))
	}
}

func summarize(p *plan.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧰 %s %s — %d h\n", p.Resumen.Marca, p.Resumen.Modelo, p.Resumen.Horas)
	fmt.Fprintf(&b, "Intervalo más cercano: %d h (%s)\n", p.Resumen.IntervaloMasCercanoH, p.Resumen.RazonIntervalo)
	if p.Resumen.Confianza != "" {
		fmt.Fprintf(&b, "Confianza: %s\n", p.Resumen.Confianza)
	}
	for _, bloque := range p.Puntos {
		fmt.Fprintf(&b, "\n%s:\n", bloque.Sistema)
		for _, it := range bloque.Items {
			fmt.Fprintf(&b, "• %s (%s, prioridad %s)\n", it.Tarea, it.Tipo, it.Prioridad)
		}
	}
	if len(p.Suposiciones) > 0 {
		b.WriteString("\nSuposiciones:\n")
		for _, s := range p.Suposiciones {
			fmt.Fprintf(&b, "• %s\n", s)
		}
	}
	b.WriteString("\nTe adjunto el JSON completo.")
	return b.String()
}
