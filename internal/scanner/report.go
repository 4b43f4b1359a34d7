package scanner

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/0xilhan/Cult-scaner-v1/internal/models"
)

// rawReport mirrors the JSON shape requested from the model. Fields are decoded leniently
// because the model does not always respect the types it was asked for.
type rawReport struct {
	Protocol string       `json:"protocol"`
	Summary  string       `json:"summary"`
	Profiles []rawProfile `json:"profiles"`
}

type rawProfile struct {
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	CultScore    flexScore       `json:"cultScore"`
	Diagnosis    string          `json:"diagnosis"`
	Background   string          `json:"background"`
	Conspiracies string          `json:"conspiracies"`
	Verdict      string          `json:"verdict"`
	ImageURL     string          `json:"imageUrl"`
	Socials      json.RawMessage `json:"socials"`
}

// flexScore accepts 7, 7.5 and "7". Anything else decodes to zero.
type flexScore int

func (s *flexScore) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		*s = 0
		return nil
	}

	*s = flexScore(math.Round(value))
	return nil
}

func (r rawReport) toResult(query string) *models.Result {
	result := &models.Result{
		Protocol: strings.TrimSpace(r.Protocol),
		Summary:  strings.TrimSpace(r.Summary),
		Profiles: make([]models.Profile, 0, len(r.Profiles)),
		Sources:  []models.Source{},
	}

	if result.Protocol == "" {
		result.Protocol = query
	}
	if result.Summary == "" {
		result.Summary = models.DefaultSummary
	}

	for _, p := range r.Profiles {
		profile := models.Profile{
			Name:         strings.TrimSpace(p.Name),
			Role:         strings.TrimSpace(p.Role),
			CultScore:    int(p.CultScore),
			Diagnosis:    p.Diagnosis,
			Background:   p.Background,
			Conspiracies: p.Conspiracies,
			Verdict:      models.Verdict(p.Verdict),
			ImageURL:     p.ImageURL,
			Socials:      compactSocials(p.Socials),
		}
		profile.Normalize()
		result.Profiles = append(result.Profiles, profile)
	}

	return result
}

// compactSocials decodes the socials object best-effort and drops it when every link is empty.
func compactSocials(raw json.RawMessage) *models.Socials {
	var s models.Socials
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return nil
	}

	out := models.Socials{
		Twitter:   strings.TrimSpace(s.Twitter),
		LinkedIn:  strings.TrimSpace(s.LinkedIn),
		Telegram:  strings.TrimSpace(s.Telegram),
		Farcaster: strings.TrimSpace(s.Farcaster),
	}
	if out == (models.Socials{}) {
		return nil
	}
	return &out
}
