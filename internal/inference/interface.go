package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client sends a prompt to a language model and returns its text answer.
// Implementations make a single attempt per call.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
