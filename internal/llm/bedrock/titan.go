package bedrock

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Titan Image Generator request/response bodies
type titanImageRequest struct {
	TaskType              string                `json:"taskType"`
	TextToImageParams     titanTextToImage      `json:"textToImageParams"`
	ImageGenerationConfig titanGenerationConfig `json:"imageGenerationConfig"`
}

type titanTextToImage struct {
	Text string `json:"text"`
}

type titanGenerationConfig struct {
	NumberOfImages int     `json:"numberOfImages"`
	Height         int     `json:"height"`
	Width          int     `json:"width"`
	CfgScale       float64 `json:"cfgScale"`
}

type titanImageResponse struct {
	Images []string `json:"images"`
	Error  *string  `json:"error"`
}

// Titan rejects prompts longer than this.
const titanMaxPromptLength = 512

func (c *Client) Illustrate(ctx context.Context, prompt string) (*llm.Image, error) {
	if c.ImageModelID == "" {
		return nil, errors.New("no bedrock image model configured")
	}

	byes, err := json.Marshal(buildTitanRequest(prompt))
	if err != nil {
		return nil, fmt.Errorf("Unable to serialize titan request. Error: %w", err)
	}

	output, err := c.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.ImageModelID),
		Body:        byes,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("Unable to invoke titan model. Error: %w", err)
	}

	return parseTitanResponse(output.Body)
}

func buildTitanRequest(prompt string) titanImageRequest {
	if runes := []rune(prompt); len(runes) > titanMaxPromptLength {
		prompt = string(runes[:titanMaxPromptLength])
	}

	return titanImageRequest{
		TaskType:          "TEXT_IMAGE",
		TextToImageParams: titanTextToImage{Text: prompt},
		ImageGenerationConfig: titanGenerationConfig{
			NumberOfImages: 1,
			Height:         512,
			Width:          512,
			CfgScale:       8.0,
		},
	}
}

func parseTitanResponse(body []byte) (*llm.Image, error) {
	var response titanImageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal titan response. Error: %w", err)
	}

	if response.Error != nil && *response.Error != "" {
		return nil, fmt.Errorf("titan image generation failed: %s", *response.Error)
	}

	if len(response.Images) == 0 || response.Images[0] == "" {
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(response.Images[0])
	if err != nil {
		return nil, fmt.Errorf("Failed to decode titan image. Error: %w", err)
	}

	return &llm.Image{MIMEType: "image/png", Data: data}, nil
}
