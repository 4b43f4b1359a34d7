package bedrock

import (
	"context"
	"fmt"

	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type runtimeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type Client struct {
	Client       runtimeAPI
	Region       string
	ModelID      string
	ImageModelID string
}

func NewClient(ctx context.Context, region string, modelID string, imageModelID string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("Unable to load AWS config: %w", err)
	}

	bedrockClient := bedrockruntime.NewFromConfig(cfg)

	return &Client{
		Client:       bedrockClient,
		Region:       region,
		ModelID:      modelID,
		ImageModelID: imageModelID,
	}, nil
}

func (c *Client) Ready() error {
	if c.Region == "" {
		return fmt.Errorf("%w: AWS_REGION is not set", llm.ErrMissingCredential)
	}
	if c.ModelID == "" {
		return fmt.Errorf("%w: BEDROCK_MODEL_ID is not set", llm.ErrMissingCredential)
	}
	return nil
}
