package probe

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks a check failure as transient: the backend is expected
// to come up shortly, so callers should retry rather than abort. Both
// transient failure shapes (dial-level and server-side operational) wrap this
// sentinel; everything else is treated as fatal.
var ErrUnavailable = errors.New("backend unavailable")

// Prober is a single synchronous readiness check against one named backend.
type Prober interface {
	Name() string
	Check(ctx context.Context) error
}

// DialError is a transient failure to reach the backend at all: connection
// refused, host not resolvable yet, handshake timeout.
type DialError struct {
	Cause error
}

func (e *DialError) Error() string {
	return fmt.Sprintf("connection failed: %v", e.Cause)
}

func (e *DialError) Unwrap() []error {
	return []error{ErrUnavailable, e.Cause}
}

// OperationalError is a transient failure from a backend that is reachable
// but not yet accepting work, e.g. Postgres still replaying WAL during
// startup.
type OperationalError struct {
	Cause error
}

func (e *OperationalError) Error() string {
	return fmt.Sprintf("backend not accepting connections: %v", e.Cause)
}

func (e *OperationalError) Unwrap() []error {
	return []error{ErrUnavailable, e.Cause}
}

// IsTransient reports whether err should be retried. The two transient
// causes are deliberately interchangeable for control flow.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
