// Package gemini adapts the Google generative AI SDK to the llm.Backend
// contract.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"tractorplan/internal/llm"
)

// Engine holds one long-lived genai client. Construct it once at process
// startup and reuse it for every request; re-authenticating per call is
// wasteful.
type Engine struct {
	client *genai.Client
	log    *zap.Logger
}

func New(ctx context.Context, log *zap.Logger, opts ...option.ClientOption) (*Engine, error) {
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Engine{client: cl, log: log}, nil
}

func (e *Engine) Close() error { return e.client.Close() }

func (e *Engine) Name() string { return "gemini" }

// Generate runs one generation call. When the configured call errors and
// the request carried options, it retries once with only (model, prompt):
// older models reject generation config outright and the fallback must be
// transparent to the caller.
func (e *Engine) Generate(ctx context.Context, req llm.Request) (llm.Output, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		return llm.Output{}, errors.New("gemini: model is empty")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return llm.Output{}, errors.New("gemini: prompt is empty")
	}

	m := e.client.GenerativeModel(model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     req.Temperature,
		TopP:            req.TopP,
		TopK:            req.TopK,
		MaxOutputTokens: req.MaxOutputTokens,
	}
	if req.JSONOutput {
		m.GenerationConfig.ResponseMIMEType = "application/json"
	}
	// req.Seed has no counterpart in GenerationConfig; advisory, dropped.

	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err == nil {
		return llm.Output{Text: firstText(resp)}, nil
	}
	if !hasConfig(req) {
		return llm.Output{}, fmt.Errorf("gemini generate: %w", err)
	}

	e.log.Warn("configured call rejected, retrying without generation config",
		zap.String("model", model), zap.Error(err))

	bare := e.client.GenerativeModel(model)
	resp, err2 := bare.GenerateContent(ctx, genai.Text(req.Prompt))
	if err2 != nil {
		return llm.Output{}, fmt.Errorf("gemini generate: %w (fallback: %v)", err, err2)
	}
	return llm.Output{Text: firstText(resp), Fallback: true}, nil
}

func hasConfig(req llm.Request) bool {
	return req.JSONOutput || req.Temperature != nil || req.TopP != nil ||
		req.TopK != nil || req.MaxOutputTokens != nil
}

// firstText pulls the first text part out of the response. The payload may
// be absent; callers get "" rather than a nil dereference.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
