package gate

import (
	"context"
	"errors"
	"sync/atomic"
)

var errGateNotComplete = errors.New("startup gate has not completed")

// Status tracks gate completion for readiness endpoints. It starts not-ready
// and flips to ready exactly once, staying ready for the life of the process.
type Status struct {
	ready atomic.Bool
}

// NewStatus returns a not-ready status.
func NewStatus() *Status {
	return &Status{}
}

// MarkReady records that every target passed its probe.
func (s *Status) MarkReady() {
	s.ready.Store(true)
}

// CheckReadiness implements observability.ReadinessChecker.
func (s *Status) CheckReadiness(_ context.Context) error {
	if s.ready.Load() {
		return nil
	}
	return errGateNotComplete
}
