package mcpadapter

import (
	"context"

	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	"github.com/0xilhan/Cult-scaner-v1/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// ScanInput is the MCP tool input schema (matches HTTP API field names).
type ScanInput struct {
	RequestID string `json:"request_id,omitempty" jsonschema:"optional caller-side identifier recorded in the server logs"`
	Protocol  string `json:"protocol" jsonschema:"name of the crypto protocol to investigate"`
}

// NewScanHandler returns a tool handler that uses the given scanner.
// Pass the returned function to mcp.AddTool.
func NewScanHandler(scanner session.Scanner, logger *zerolog.Logger) func(context.Context, *mcp.CallToolRequest, ScanInput) (*mcp.CallToolResult, models.Result, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, models.Result, error) {
		logger.Info().
			Str("request_id", input.RequestID).
			Str("protocol", input.Protocol).
			Msg("scan_protocol called")

		result, structured, err := ScanProtocol(ctx, scanner, req, input)
		if err != nil {
			logger.Error().
				Err(err).
				Str("request_id", input.RequestID).
				Msg("scan_protocol failed")
		}
		return result, structured, err
	}
}

// ScanProtocol runs one scan and returns the dossier as structured content.
func ScanProtocol(
	ctx context.Context,
	scanner session.Scanner,
	req *mcp.CallToolRequest,
	input ScanInput,
) (*mcp.CallToolResult, models.Result, error) {
	scanRequest := models.ScanRequest{
		RequestID: input.RequestID,
		Protocol:  input.Protocol,
	}
	if err := scanRequest.Validate(); err != nil {
		return nil, models.Result{}, err
	}

	result, err := scanner.Scan(ctx, scanRequest.Protocol)
	if err != nil {
		return nil, models.Result{}, err
	}

	return nil, *result, nil
}
