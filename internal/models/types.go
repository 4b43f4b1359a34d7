package models

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyQuery = errors.New("protocol name is required")

type Verdict string

const (
	VerdictSafe       Verdict = "SAFE"
	VerdictCaution    Verdict = "CAUTION"
	VerdictDanger     Verdict = "DANGER"
	VerdictCultLeader Verdict = "CULT_LEADER"
)

const (
	MinCultScore = 0
	MaxCultScore = 10

	DefaultSummary = "No summary provided."
)

type Socials struct {
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Telegram  string `json:"telegram,omitempty"`
	Farcaster string `json:"farcaster,omitempty"`
}

// Profile is the dossier of one team member.
type Profile struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	CultScore    int      `json:"cultScore"`
	Diagnosis    string   `json:"diagnosis"`
	Background   string   `json:"background"`
	Conspiracies string   `json:"conspiracies"`
	Verdict      Verdict  `json:"verdict"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Socials      *Socials `json:"socials,omitempty"`
}

// Source is a grounding citation attached to the model answer.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type Result struct {
	Protocol string    `json:"protocol"`
	Summary  string    `json:"summary"`
	Profiles []Profile `json:"profiles"`
	Sources  []Source  `json:"sources"`
}

// Input message

type ScanRequest struct {
	RequestID string `json:"request_id,omitempty"`
	Protocol  string `json:"protocol"`
}

func (r *ScanRequest) Validate() error {
	r.Protocol = strings.TrimSpace(r.Protocol)
	if r.Protocol == "" {
		return ErrEmptyQuery
	}
	return nil
}

type ScanStatus string

const (
	ScanStatusSuccess ScanStatus = "SUCCESS"
	ScanStatusError   ScanStatus = "ERROR"
)

// Reply message published by the stream worker
type ScanOutcome struct {
	RequestID  string     `json:"request_id"`
	Protocol   string     `json:"protocol"`
	Status     ScanStatus `json:"status"`
	Result     *Result    `json:"result,omitempty"`
	Error      string     `json:"error,omitempty"`
	FinishedAt time.Time  `json:"finished_at"`
}
