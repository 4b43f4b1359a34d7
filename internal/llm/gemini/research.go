package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"google.golang.org/genai"
)

func (c *Client) Research(ctx context.Context, request llm.ResearchRequest) (*llm.ResearchResponse, error) {
	client, err := c.newGenAIClient(ctx)
	if err != nil {
		return nil, err
	}

	output, err := client.Models.GenerateContent(ctx, c.TextModel, genai.Text(request.Prompt), researchConfig(request))
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gemini model %s: %w", c.TextModel, err)
	}

	return toResearchResponse(output), nil
}

func researchConfig(request llm.ResearchRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	if request.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(request.SystemPrompt, genai.RoleUser)
	}
	if request.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	// Gemini 2.5 rejects a JSON response MIME type together with tools; the persona asks for a
	// fenced JSON block instead.
	if request.JSONOutput && !request.WebSearch {
		cfg.ResponseMIMEType = "application/json"
	}
	if request.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(request.MaxTokens)
	}
	if request.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*request.Temperature))
	}

	return cfg
}

func toResearchResponse(output *genai.GenerateContentResponse) *llm.ResearchResponse {
	response := &llm.ResearchResponse{}
	if output == nil || len(output.Candidates) == 0 {
		return response
	}

	candidate := output.Candidates[0]
	response.StopReason = string(candidate.FinishReason)

	if candidate.Content != nil {
		var text strings.Builder
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			text.WriteString(part.Text)
		}
		response.Content = text.String()
	}

	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			response.Citations = append(response.Citations, llm.Citation{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}

	return response
}
