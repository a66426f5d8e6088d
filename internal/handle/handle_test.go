package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tractorplan/internal/history"
	"tractorplan/internal/llm"
	"tractorplan/internal/plan"
)

const validPlanJSON = `{
  "resumen": {"marca": "John Deere", "modelo": "6120M", "horas": 250, "intervalo_mas_cercano_h": 250, "razon_intervalo": "intervalo típico", "confianza": "Media"},
  "puntos_mantenimiento": [{"sistema": "Motor y admisión", "items": []}],
  "ref_partes": [],
  "fuentes": [],
  "consumibles_recomendados": [],
  "chequeos_criticos": [],
  "suposiciones": []
}`

type scriptedBackend struct {
	texts []string
	calls int
}

func (s *scriptedBackend) Generate(_ context.Context, _ llm.Request) (llm.Output, error) {
	i := s.calls
	s.calls++
	if i < len(s.texts) {
		return llm.Output{Text: s.texts[i]}, nil
	}
	return llm.Output{Text: ""}, nil
}

func newTestHandle(texts ...string) (*Handle, *scriptedBackend, *history.Store) {
	b := &scriptedBackend{texts: texts}
	gen := plan.NewGenerator(b, "gemini-2.0-flash", zap.NewNop())
	hist := history.NewStore(20)
	return New(gen, hist, 5*time.Second, zap.NewNop()), b, hist
}

func TestGeneratePlanOK(t *testing.T) {
	h, b, hist := newTestHandle(validPlanJSON)

	req := httptest.NewRequest(http.MethodPost, "/v1/plan",
		strings.NewReader(`{"marca":"John Deere","modelo":"6120M","horas":250}`))
	w := httptest.NewRecorder()
	h.GeneratePlan(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "John Deere", resp.Plan.Resumen.Marca)
	assert.Equal(t, "mantenimiento_John_Deere_6120M_250h.json", resp.Filename)
	assert.Equal(t, 1, b.calls)
	assert.Len(t, hist.List(), 1)
}

func TestGeneratePlanDefaultHours(t *testing.T) {
	h, _, hist := newTestHandle(validPlanJSON)

	req := httptest.NewRequest(http.MethodPost, "/v1/plan",
		strings.NewReader(`{"marca":"John Deere","modelo":"6120M"}`))
	w := httptest.NewRecorder()
	h.GeneratePlan(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 250, hist.List()[0].Horas)
}

func TestGeneratePlanValidation(t *testing.T) {
	h, b, _ := newTestHandle()

	req := httptest.NewRequest(http.MethodPost, "/v1/plan",
		strings.NewReader(`{"marca":"   ","modelo":"6120M","horas":250}`))
	w := httptest.NewRecorder()
	h.GeneratePlan(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Stage   string   `json:"stage"`
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation", body.Stage)
	assert.Equal(t, []string{"marca"}, body.Missing)
	assert.Equal(t, 0, b.calls)
}

func TestGeneratePlanUnrecoverableParse(t *testing.T) {
	h, b, _ := newTestHandle("not json", "still not json")

	req := httptest.NewRequest(http.MethodPost, "/v1/plan",
		strings.NewReader(`{"marca":"John Deere","modelo":"6120M","horas":250}`))
	w := httptest.NewRecorder()
	h.GeneratePlan(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var body struct {
		Stage   string `json:"stage"`
		RawText string `json:"raw_text"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "parse", body.Stage)
	assert.NotEmpty(t, body.RawText, "raw model text is surfaced for debugging")
	assert.Equal(t, 2, b.calls)
}

func TestGeneratePlanMethodNotAllowed(t *testing.T) {
	h, _, _ := newTestHandle()
	req := httptest.NewRequest(http.MethodGet, "/v1/plan", nil)
	w := httptest.NewRecorder()
	h.GeneratePlan(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHistoryAndClear(t *testing.T) {
	h, _, hist := newTestHandle()
	var p plan.Plan
	require.NoError(t, json.Unmarshal([]byte(validPlanJSON), &p))
	hist.Add("John Deere", "6120M", 250, &p)

	req := httptest.NewRequest(http.MethodGet, "/v1/plan/history", nil)
	w := httptest.NewRecorder()
	h.History(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []history.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "6120M", entries[0].Modelo)

	req = httptest.NewRequest(http.MethodDelete, "/v1/plan/history", nil)
	w = httptest.NewRecorder()
	h.History(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, hist.List())
}

func TestDownload(t *testing.T) {
	h, _, hist := newTestHandle()
	var p plan.Plan
	require.NoError(t, json.Unmarshal([]byte(validPlanJSON), &p))
	e := hist.Add("John Deere", "6120M", 250, &p)

	req := httptest.NewRequest(http.MethodGet, "/v1/plan/download?id=1", nil)
	w := httptest.NewRecorder()
	h.Download(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "mantenimiento_John_Deere_6120M_250h.json")

	var reloaded plan.Plan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reloaded))
	assert.Equal(t, *e.Plan, reloaded)

	t.Run("bad id", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Download(w, httptest.NewRequest(http.MethodGet, "/v1/plan/download?id=abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Download(w, httptest.NewRequest(http.MethodGet, "/v1/plan/download?id=999", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
