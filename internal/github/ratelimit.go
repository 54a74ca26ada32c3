package github

import (
	"context"
	"sync"
	"time"

	"github.com/google/go-github/v81/github"
	"golang.org/x/time/rate"
)

const (
	// authenticatedRate is the proactive throttle for token-bearing
	// clients (~1.2 req/sec keeps us well under 5000/hour).
	authenticatedRate = 1.2

	// guestRate matches the unauthenticated ceiling of 60 req/hour with a
	// little headroom for the handful of calls one run makes.
	guestRate = 0.5

	// minRemaining is the reserve below which we wait for the quota reset
	// instead of spending the last requests.
	minRemaining = 20
)

// throttle combines a proactive token bucket with reactive tracking of
// the quota headers go-github reports on every response.
type throttle struct {
	bucket *rate.Limiter

	mu        sync.Mutex
	remaining int
	reset     time.Time
}

func newThrottle(perSecond float64) *throttle {
	return &throttle{
		bucket:    rate.NewLimiter(rate.Limit(perSecond), 1),
		remaining: minRemaining + 1,
	}
}

// wait blocks until a request may be sent without tripping the upstream
// quota.
func (t *throttle) wait(ctx context.Context) error {
	if err := t.bucket.Wait(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	remaining := t.remaining
	reset := t.reset
	t.mu.Unlock()

	if remaining < minRemaining && time.Now().Before(reset) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(reset)):
		}
	}
	return nil
}

// observe records the quota state from a response.
func (t *throttle) observe(resp *github.Response) {
	if resp == nil {
		return
	}
	t.mu.Lock()
	t.remaining = resp.Rate.Remaining
	t.reset = resp.Rate.Reset.Time
	t.mu.Unlock()
}
