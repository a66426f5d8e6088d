// Package llm defines the contract with the hosted generation backend.
package llm

import "context"

// Request describes one generation call. Everything besides Model and
// Prompt is advisory: a backend may honor it, reject it, or silently
// ignore it. Callers must not depend on any option being applied.
type Request struct {
	Model  string
	Prompt string

	// JSONOutput asks the backend to constrain its answer to parseable JSON.
	JSONOutput bool

	Temperature     *float32
	TopP            *float32
	TopK            *int32
	MaxOutputTokens *int32

	// Seed is best-effort reproducibility. The Gemini SDK exposes no knob
	// for it, so that adapter drops it.
	Seed *int32
}

// Output is the raw answer. Text is normalized to "" when the response
// carried no text part. Fallback reports that the configured call was
// rejected and the bare (model + prompt) retry produced this text.
type Output struct {
	Text     string
	Fallback bool
}

// Backend is the generation service. Implementations must tolerate being
// called with a Request that carries no options at all.
type Backend interface {
	Generate(ctx context.Context, req Request) (Output, error)
}
