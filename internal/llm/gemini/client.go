package gemini

import (
	"context"
	"fmt"

	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"google.golang.org/genai"
)

const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-2.5-flash-image"
)

type Client struct {
	APIKey     string
	TextModel  string
	ImageModel string
}

func NewClient(apiKey string, textModel string, imageModel string) *Client {
	if textModel == "" {
		textModel = DefaultTextModel
	}
	if imageModel == "" {
		imageModel = DefaultImageModel
	}

	return &Client{
		APIKey:     apiKey,
		TextModel:  textModel,
		ImageModel: imageModel,
	}
}

func (c *Client) Ready() error {
	if c.APIKey == "" {
		return llm.ErrMissingCredential
	}
	return nil
}

// genai clients hold no connection, so one is built per call with the configured key.
func (c *Client) newGenAIClient(ctx context.Context) (*genai.Client, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create gemini client: %w", err)
	}
	return client, nil
}
