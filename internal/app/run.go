package app

import (
	"errors"

	"github.com/google/uuid"

	"photorg/internal/photorg"
)

const (
	StatusSuccess = "success"
	StatusAborted = "aborted"
	StatusError   = "error"
)

// Run tracks a single organize invocation. Its ID tags every log line
// written during the run.
type Run struct {
	ID     string
	Target string
	Mode   string // "simulate" or "apply"
	Status string
}

// NewRun creates a new in-memory run record with a fresh random ID.
func NewRun() *Run {
	return &Run{
		ID:     uuid.NewString(),
		Status: StatusSuccess,
	}
}

// Start records what the run operates on.
func (r *Run) Start(target string, simulateOnly bool) {
	r.Target = target
	r.Mode = "apply"
	if simulateOnly {
		r.Mode = "simulate"
	}
}

// Finish records the outcome of the run from the error it ended with.
func (r *Run) Finish(err error) {
	switch {
	case err == nil:
		r.Status = StatusSuccess
	case errors.Is(err, photorg.ErrAborted):
		r.Status = StatusAborted
	default:
		r.Status = StatusError
	}
}
