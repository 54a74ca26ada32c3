package wrapped

import (
	"errors"
	"fmt"
	"time"
)

// ErrUserNotFound indicates the requested username does not exist on the
// upstream API. It is never conflated with rate limiting or transient
// failures.
var ErrUserNotFound = errors.New("user not found")

// RateLimitError indicates the upstream API quota is exhausted. Unlike
// transient failures it invalidates the whole orchestration run, so
// collectors let it propagate instead of degrading to defaults.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "rate limit exceeded"
	}
	return fmt.Sprintf("rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// IsRateLimited reports whether err indicates upstream quota exhaustion.
func IsRateLimited(err error) bool {
	var rateErr *RateLimitError
	return errors.As(err, &rateErr)
}

// IsNotFound reports whether err indicates an unknown user.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// fatal reports whether err must short-circuit the orchestration run
// rather than degrade a single signal.
func fatal(err error) bool {
	return err != nil && (IsRateLimited(err) || IsNotFound(err))
}
