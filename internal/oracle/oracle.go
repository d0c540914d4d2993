// Package oracle abstracts the text-generation service the classification
// stages are built on. The pipeline only ever sees the Client interface, so
// which model answers (a local Ollama instance, Gemini) is a wiring decision,
// not pipeline logic.
package oracle

import "context"

// Unknown is the sentinel some backends hand back in place of generated
// text when the upstream call fails. Response parsers must treat it as
// "no valid output", never as a value.
const Unknown = "Unknown"

// Client is a single-shot prompt-in, text-out capability. Responses are
// free-form; every caller owns a strict parsing contract for its own prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts a plain function to Client. Used by the middleware in this
// package and by test fakes.
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
