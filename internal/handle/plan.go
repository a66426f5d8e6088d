package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"tractorplan/internal/plan"
)

// PlanRequest mirrors the form fields. Horas defaults to 250 when the
// field is absent, matching the form's prefilled value.
type PlanRequest struct {
	Marca    string   `json:"marca"`
	Modelo   string   `json:"modelo"`
	Horas    *int     `json:"horas"`
	ModeloIA string   `json:"modelo_ia,omitempty"`
	Preset   string   `json:"preset,omitempty"`
	Temp     *float32 `json:"temperature,omitempty"`
	Seed     *int32   `json:"seed,omitempty"`
	Objetivo string   `json:"objetivo,omitempty"`
}

type PlanResponse struct {
	ID       int64      `json:"id"`
	Filename string     `json:"filename"`
	Plan     *plan.Plan `json:"plan"`
}

func (h *Handle) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}

	horas := 250
	if req.Horas != nil {
		horas = *req.Horas
	}

	in := plan.Input{
		Marca:  req.Marca,
		Modelo: req.Modelo,
		Horas:  horas,
		Options: plan.Options{
			Model:       req.ModeloIA,
			Preset:      plan.Preset(req.Preset),
			Temperature: req.Temp,
			Seed:        req.Seed,
			Objetivo:    req.Objetivo,
		},
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.gen.Generate(ctx, in)
	if err != nil {
		writeError(w, err)
		return
	}

	if unknown := p.UnknownSystems(); len(unknown) > 0 {
		h.log.Warn("plan uses systems outside the enumeration",
			zap.Strings("sistemas", unknown))
	}

	e := h.hist.Add(in.Marca, in.Modelo, in.Horas, p)
	writeJSON(w, http.StatusOK, PlanResponse{
		ID:       e.ID,
		Filename: plan.ArtifactName(e.Marca, e.Modelo, e.Horas),
		Plan:     p,
	})
}

func (h *Handle) History(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.hist.List())
	case http.MethodDelete:
		h.hist.Clear()
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "GET or DELETE only", http.StatusMethodNotAllowed)
	}
}

// Download serves a stored plan as an attachment with the derived filename.
func (h *Handle) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	e, ok := h.hist.Get(id)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	body, err := e.Plan.Indent()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+plan.ArtifactName(e.Marca, e.Modelo, e.Horas)+`"`)
	_, _ = w.Write(body)
}
