package llm

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

import (
	"context"
	"errors"
)

var ErrMissingCredential = errors.New("API key not found in environment variables")

// Researcher asks a text model to investigate a topic, optionally grounded on web search.
// This allows mocking in tests without making real API calls
type Researcher interface {
	// Ready reports whether the provider has the credential it needs. It never touches the network.
	Ready() error
	Research(ctx context.Context, request ResearchRequest) (*ResearchResponse, error)
}

// Illustrator generates a single image from a text prompt.
// A nil image with a nil error means the model answered without an image.
type Illustrator interface {
	Illustrate(ctx context.Context, prompt string) (*Image, error)
}
