package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v81/github"

	"github-wrapped/internal/wrapped"
)

// translateError converts go-github failures into the domain error
// taxonomy. Rate-limit and not-found conditions come back as their typed
// forms so the orchestrator can short-circuit; everything else passes
// through for the collectors to absorb.
func translateError(op string, err error, resp *github.Response) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &wrapped.RateLimitError{
			ResetAt:   rateErr.Rate.Reset.Time,
			Remaining: rateErr.Rate.Remaining,
			Limit:     rateErr.Rate.Limit,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := time.Now()
		if abuseErr.RetryAfter != nil {
			reset = reset.Add(*abuseErr.RetryAfter)
		}
		return &wrapped.RateLimitError{ResetAt: reset}
	}

	if resp != nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, wrapped.ErrUserNotFound)
		case http.StatusTooManyRequests:
			return &wrapped.RateLimitError{
				ResetAt:   resp.Rate.Reset.Time,
				Remaining: resp.Rate.Remaining,
				Limit:     resp.Rate.Limit,
			}
		case http.StatusForbidden:
			if resp.Rate.Remaining == 0 {
				return &wrapped.RateLimitError{
					ResetAt: resp.Rate.Reset.Time,
					Limit:   resp.Rate.Limit,
				}
			}
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// isSearchWindowExhausted reports whether the error is the upstream
// search API refusing pages past its 1000-result window. That boundary is
// expected steady-state behavior, not a fault.
func isSearchWindowExhausted(err error) bool {
	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		return apiErr.Response.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}
