package scanner

import (
	"strings"

	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"github.com/0xilhan/Cult-scaner-v1/internal/models"
)

// DedupeSources keeps citations that have both a URI and a title,
// and drops later duplicates of a URI.
func DedupeSources(citations []llm.Citation) []models.Source {
	sources := make([]models.Source, 0, len(citations))
	seen := make(map[string]struct{}, len(citations))

	for _, c := range citations {
		uri := strings.TrimSpace(c.URI)
		title := strings.TrimSpace(c.Title)
		if uri == "" || title == "" {
			continue
		}
		if _, dup := seen[uri]; dup {
			continue
		}
		seen[uri] = struct{}{}
		sources = append(sources, models.Source{Title: title, URI: uri})
	}

	return sources
}
