package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/0xilhan/Cult-scaner-v1/internal/config"
	"github.com/0xilhan/Cult-scaner-v1/internal/extract"
	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	"github.com/rs/zerolog"
)

var ErrUnparseableReport = errors.New("failed to parse intelligence report")

// Scanner researches the team behind a protocol and turns the model answer into a Result.
type Scanner struct {
	researcher   llm.Researcher
	illustrator  llm.Illustrator
	cfg          *config.ScannerConfig
	userPrompt   *template.Template
	avatarPrompt *template.Template
	logger       *zerolog.Logger
}

type userPromptData struct {
	Protocol string
}

// NewScanner wires the scanner. illustrator may be nil, in which case missing images are left empty.
func NewScanner(
	researcher llm.Researcher,
	illustrator llm.Illustrator,
	cfg *config.ScannerConfig,
	logger *zerolog.Logger,
) (*Scanner, error) {
	if researcher == nil {
		return nil, errors.New("researcher is required")
	}
	if cfg == nil {
		return nil, errors.New("scanner config is nil")
	}

	userPrompt, err := template.New("user_prompt").Parse(cfg.Analysis.UserPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user prompt template: %w", err)
	}

	avatarPrompt, err := template.New("avatar_prompt").Parse(cfg.Avatar.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse avatar prompt template: %w", err)
	}

	return &Scanner{
		researcher:   researcher,
		illustrator:  illustrator,
		cfg:          cfg,
		userPrompt:   userPrompt,
		avatarPrompt: avatarPrompt,
		logger:       logger,
	}, nil
}

// Scan runs one investigation. It either returns a complete Result or an error, never both.
func (s *Scanner) Scan(ctx context.Context, protocol string) (*models.Result, error) {
	now := time.Now()

	protocol = strings.TrimSpace(protocol)
	if protocol == "" {
		return nil, models.ErrEmptyQuery
	}

	// Fail before any network call when the provider is not configured
	if err := s.researcher.Ready(); err != nil {
		return nil, err
	}

	prompt, err := s.buildUserPrompt(protocol)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("protocol", protocol).
		Bool("web_search", s.cfg.Analysis.WebSearch).
		Msg("starting scan")

	resp, err := s.researcher.Research(ctx, llm.ResearchRequest{
		SystemPrompt: s.cfg.Analysis.SystemPrompt,
		Prompt:       prompt,
		WebSearch:    s.cfg.Analysis.WebSearch,
		JSONOutput:   s.cfg.Analysis.StructuredOutput,
		MaxTokens:    s.cfg.Analysis.Model.MaxTokens,
		Temperature:  s.cfg.Analysis.Model.Temperature,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("protocol", protocol).
			Msg("analysis call failed")
		return nil, err
	}

	var report rawReport
	if !extract.Decode(resp.Content, &report) {
		s.logger.Error().
			Str("protocol", protocol).
			Str("content", resp.Content).
			Msg("failed to deserialize model response")
		return nil, fmt.Errorf("%w: the model did not return valid JSON", ErrUnparseableReport)
	}

	result := report.toResult(protocol)
	s.backfillImages(ctx, result.Profiles)
	result.Sources = DedupeSources(resp.Citations)

	s.logger.Info().
		Str("protocol", result.Protocol).
		Int("profiles", len(result.Profiles)).
		Int("sources", len(result.Sources)).
		Dur("duration", time.Since(now)).
		Msg("scan completed")

	return result, nil
}

func (s *Scanner) buildUserPrompt(protocol string) (string, error) {
	var buf bytes.Buffer
	if err := s.userPrompt.Execute(&buf, userPromptData{Protocol: protocol}); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
