package scanner

import (
	"bytes"
	"context"
	"strings"

	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	"golang.org/x/sync/errgroup"
)

type avatarPromptData struct {
	Role      string
	Diagnosis string
}

// HasUsableImage reports whether ref is a web URL or an inline data URI.
func HasUsableImage(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:")
}

// backfillImages asks the illustrator for a portrait for every profile without a usable image.
// Each profile is handled independently; failures leave the profile untouched.
func (s *Scanner) backfillImages(ctx context.Context, profiles []models.Profile) {
	if s.illustrator == nil || !s.cfg.Avatar.Enabled {
		return
	}

	var g errgroup.Group
	g.SetLimit(s.cfg.Avatar.Workers)

	for i := range profiles {
		if HasUsableImage(profiles[i].ImageURL) {
			continue
		}

		g.Go(func() error {
			if uri := s.generateAvatar(ctx, profiles[i]); uri != "" {
				profiles[i].ImageURL = uri
			}
			return nil
		})
	}

	_ = g.Wait()
}

func (s *Scanner) generateAvatar(ctx context.Context, profile models.Profile) string {
	prompt, err := s.buildAvatarPrompt(profile)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("profile", profile.Name).
			Msg("failed to build avatar prompt")
		return ""
	}

	image, err := s.illustrator.Illustrate(ctx, prompt)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("profile", profile.Name).
			Msg("avatar generation failed")
		return ""
	}

	if image == nil || len(image.Data) == 0 {
		s.logger.Debug().
			Str("profile", profile.Name).
			Msg("avatar model returned no image")
		return ""
	}

	return image.DataURI()
}

func (s *Scanner) buildAvatarPrompt(profile models.Profile) (string, error) {
	var buf bytes.Buffer
	err := s.avatarPrompt.Execute(&buf, avatarPromptData{
		Role:      profile.Role,
		Diagnosis: truncate(profile.Diagnosis, s.cfg.Avatar.DiagnosisLimit),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
