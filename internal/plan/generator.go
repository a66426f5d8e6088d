package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tractorplan/internal/llm"
	"tractorplan/internal/metrics"
)

// Preset names a generation temperature profile selectable from the form.
type Preset string

const (
	PresetPreciso     Preset = "preciso"
	PresetEquilibrado Preset = "equilibrado"
	PresetCreativo    Preset = "creativo"
)

// Temperature maps the preset to its sampling temperature. Unknown presets
// fall back to the precise profile.
func (p Preset) Temperature() float32 {
	switch p {
	case PresetEquilibrado:
		return 0.7
	case PresetCreativo:
		return 1.1
	default:
		return 0.2
	}
}

// Options are the per-request generation knobs. All of them are advisory
// (the backend may ignore them); Model overrides the generator default.
type Options struct {
	Model       string
	Preset      Preset
	Temperature *float32
	Seed        *int32
	// Objetivo is free text appended to the prompt ("céntrate en el
	// sistema hidráulico", "respuestas breves", ...).
	Objetivo string
}

// Input is one user-submitted request.
type Input struct {
	Marca   string
	Modelo  string
	Horas   int
	Options Options
}

const (
	defaultMaxOutputTokens int32 = 8192
	// The repair pass only has to close what is open, so its ceiling is
	// deliberately lower than the primary call's.
	repairMaxOutputTokens int32 = 4096
)

// Generator drives the full chain: prompt → backend → normalize → extract
// → parse, with a single repair pass on malformed output.
type Generator struct {
	backend   llm.Backend
	extractor Extractor
	model     string
	log       *zap.Logger
}

func NewGenerator(backend llm.Backend, defaultModel string, log *zap.Logger) *Generator {
	return &Generator{
		backend:   backend,
		extractor: BraceSpanExtractor{},
		model:     strings.TrimSpace(defaultModel),
		log:       log,
	}
}

// SetExtractor swaps the JSON extraction heuristic.
func (g *Generator) SetExtractor(x Extractor) { g.extractor = x }

// Generate produces a validated plan or a single consolidated error naming
// the failed stage. It performs at most two sequential backend calls
// (primary, optional repair) and never caches across inputs.
func (g *Generator) Generate(ctx context.Context, in Input) (*Plan, error) {
	in.Marca = strings.TrimSpace(in.Marca)
	in.Modelo = strings.TrimSpace(in.Modelo)
	if err := validate(in); err != nil {
		return nil, err
	}

	metrics.PlansRequested.Inc()

	model := strings.TrimSpace(in.Options.Model)
	if model == "" {
		model = g.model
	}

	temp := in.Options.Preset.Temperature()
	if in.Options.Temperature != nil {
		temp = *in.Options.Temperature
	}
	maxTokens := defaultMaxOutputTokens

	out, err := g.backend.Generate(ctx, llm.Request{
		Model:           model,
		Prompt:          BuildPrompt(in),
		JSONOutput:      true,
		Temperature:     &temp,
		MaxOutputTokens: &maxTokens,
		Seed:            in.Options.Seed,
	})
	if err != nil {
		return nil, &BackendCallError{Stage: "generate", Err: err}
	}
	if out.Fallback {
		metrics.FallbackCalls.Inc()
	}

	candidate := g.extractor.Extract(NormalizeText(out.Text))
	p, perr := parsePlan(candidate)
	if perr == nil {
		metrics.PlansSucceeded.Inc()
		return p, nil
	}

	g.log.Warn("model output failed strict parse, attempting repair",
		zap.String("marca", in.Marca), zap.String("modelo", in.Modelo),
		zap.Error(perr))
	metrics.RepairAttempts.Inc()

	repaired, err := g.repair(ctx, model, perr.Text)
	if err != nil {
		return nil, err
	}
	metrics.PlansSucceeded.Inc()
	return repaired, nil
}

// repair is the single corrective pass: deterministic settings, reduced
// output ceiling, structured output requested. There is no recursive
// repair loop; a second failure is terminal.
func (g *Generator) repair(ctx context.Context, model, malformed string) (*Plan, error) {
	var (
		zero      float32
		maxTokens = repairMaxOutputTokens
	)
	out, err := g.backend.Generate(ctx, llm.Request{
		Model:           model,
		Prompt:          buildRepairPrompt(malformed),
		JSONOutput:      true,
		Temperature:     &zero,
		MaxOutputTokens: &maxTokens,
	})
	if err != nil {
		return nil, &BackendCallError{Stage: "repair", Err: err}
	}

	candidate := g.extractor.Extract(NormalizeText(out.Text))
	p, perr := parsePlan(candidate)
	if perr != nil {
		metrics.ParseFailures.Inc()
		return nil, &UnrecoverableParseError{Text: perr.Text, Err: perr.Err}
	}
	return p, nil
}

func validate(in Input) error {
	var missing []string
	if in.Marca == "" {
		missing = append(missing, "marca")
	}
	if in.Modelo == "" {
		missing = append(missing, "modelo")
	}
	if in.Horas < 0 {
		missing = append(missing, "horas (debe ser >= 0)")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// parsePlan is the strict parse step. The enumeration of system names is
// deliberately not enforced here: unknown systems are rendered as-is and
// only warned about downstream.
func parsePlan(text string) (*Plan, *MalformedOutputError) {
	var p Plan
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, &MalformedOutputError{Text: text, Err: fmt.Errorf("bad JSON: %w", err)}
	}
	return &p, nil
}
