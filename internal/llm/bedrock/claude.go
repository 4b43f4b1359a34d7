package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type claudeMessageRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Temperature      *float64        `json:"temperature,omitempty"`
	System           string          `json:"system,omitempty"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

var anthropicVersion = "bedrock-2023-05-31"

const defaultMaxTokens = 4096

// Research calls Claude through the messages API. Bedrock has no search grounding,
// so WebSearch is ignored and no citations are returned.
func (c *Client) Research(ctx context.Context, request llm.ResearchRequest) (*llm.ResearchResponse, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	byes, err := json.Marshal(buildClaudeRequest(request))
	if err != nil {
		return nil, fmt.Errorf("Unable to serialize claude request. Error: %w", err)
	}

	output, err := c.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.ModelID),
		Body:        byes,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("Unable to invoke claude model. Error: %w", err)
	}

	return parseClaudeResponse(output.Body)
}

func buildClaudeRequest(request llm.ResearchRequest) claudeMessageRequest {
	maxTokens := request.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	system := request.SystemPrompt
	if request.JSONOutput {
		system = strings.TrimSpace(system + "\n\nRespond with the JSON object only.")
	}

	return claudeMessageRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		Temperature:      request.Temperature,
		System:           system,
		Messages: []claudeMessage{
			{
				Role:    "user",
				Content: request.Prompt,
			},
		},
	}
}

func parseClaudeResponse(body []byte) (*llm.ResearchResponse, error) {
	var response claudeMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal bedrock response. Error: %w", err)
	}

	var content strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return &llm.ResearchResponse{
		Content:    content.String(),
		StopReason: response.StopReason,
	}, nil
}
