package gemini

import (
	"context"
	"fmt"

	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"google.golang.org/genai"
)

func (c *Client) Illustrate(ctx context.Context, prompt string) (*llm.Image, error) {
	client, err := c.newGenAIClient(ctx)
	if err != nil {
		return nil, err
	}

	output, err := client.Models.GenerateContent(ctx, c.ImageModel, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gemini image model %s: %w", c.ImageModel, err)
	}

	return firstInlineImage(output), nil
}

// firstInlineImage returns the first inline image part of the first candidate, or nil.
func firstInlineImage(output *genai.GenerateContentResponse) *llm.Image {
	if output == nil || len(output.Candidates) == 0 {
		return nil
	}

	candidate := output.Candidates[0]
	if candidate.Content == nil {
		return nil
	}

	for _, part := range candidate.Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		return &llm.Image{
			MIMEType: part.InlineData.MIMEType,
			Data:     part.InlineData.Data,
		}
	}
	return nil
}
