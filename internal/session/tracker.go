package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	"github.com/rs/zerolog"
)

type State string

const (
	StateIdle     State = "IDLE"
	StateScanning State = "SCANNING"
	StateSuccess  State = "SUCCESS"
	StateError    State = "ERROR"
)

// Scanner is the single operation the tracker drives.
type Scanner interface {
	Scan(ctx context.Context, protocol string) (*models.Result, error)
}

// Snapshot is a copy of the tracker state at one point in time.
type Snapshot struct {
	State      State          `json:"state" description:"IDLE, SCANNING, SUCCESS or ERROR"`
	Generation uint64         `json:"generation" description:"Sequence number of the scan this state belongs to"`
	Query      string         `json:"query,omitempty" description:"Protocol being or last scanned"`
	Result     *models.Result `json:"result,omitempty" description:"Dossier of the last successful scan"`
	Error      string         `json:"error,omitempty" description:"Failure message of the last scan"`
	StartedAt  *time.Time     `json:"started_at,omitempty"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
}

// Tracker holds the caller-visible state of the most recent scan.
// A scan started later always wins: completions of superseded scans are dropped.
type Tracker struct {
	mu      sync.Mutex
	scanner Scanner
	current Snapshot
	logger  *zerolog.Logger
}

func NewTracker(scanner Scanner, logger *zerolog.Logger) *Tracker {
	return &Tracker{
		scanner: scanner,
		current: Snapshot{State: StateIdle},
		logger:  logger,
	}
}

// Begin moves the tracker to SCANNING for query and returns the generation of the new scan.
func (t *Tracker) Begin(query string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.current = Snapshot{
		State:      StateScanning,
		Generation: t.current.Generation + 1,
		Query:      strings.TrimSpace(query),
		StartedAt:  &now,
	}
	return t.current.Generation
}

// Complete records the outcome of the scan identified by generation.
// It returns false and leaves the state untouched when a newer scan has started since.
func (t *Tracker) Complete(generation uint64, result *models.Result, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if generation != t.current.Generation {
		t.logger.Debug().
			Uint64("generation", generation).
			Uint64("current", t.current.Generation).
			Msg("dropping stale scan completion")
		return false
	}

	now := time.Now()
	t.current.FinishedAt = &now
	if err != nil {
		t.current.State = StateError
		t.current.Error = err.Error()
		t.current.Result = nil
		return true
	}

	t.current.State = StateSuccess
	t.current.Result = result
	t.current.Error = ""
	return true
}

// Run scans query and records the outcome. The scan result is returned to the caller
// whether or not it was superseded.
func (t *Tracker) Run(ctx context.Context, query string) (*models.Result, error) {
	generation := t.Begin(query)

	result, err := t.scanner.Scan(ctx, query)
	t.Complete(generation, result, err)

	return result, err
}

// Scan is Run under the Scanner interface, so front ends can share one tracked scanner.
func (t *Tracker) Scan(ctx context.Context, protocol string) (*models.Result, error) {
	return t.Run(ctx, protocol)
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
