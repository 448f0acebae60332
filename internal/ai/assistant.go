package ai

import (
	"context"
	"errors"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
)

// ErrEmptyResponse is returned when a provider answers without any generated text.
var ErrEmptyResponse = errors.New("empty generated text")

// Generator turns a prompt into free text using a remote model.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}
