package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model answered with no text parts.
var ErrEmptyResponse = errors.New("llm: empty response")

type Provider interface {
	// Generate returns the full text completion for prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
