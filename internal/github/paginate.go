package github

import (
	"context"
	"time"

	"github-wrapped/internal/wrapped"
)

const (
	defaultPageSize = 100

	// searchResultCap is the upstream search window: only the first 1000
	// matches are retrievable regardless of pagination.
	searchResultCap = 1000

	pageTimeout  = 10 * time.Second
	pageRetries  = 2
	retryBackoff = time.Second
)

// pageFunc fetches one page of results. Implementations translate their
// own errors before returning.
type pageFunc[T any] func(ctx context.Context, page, perPage int) ([]T, error)

// fetchAllPages pages through a list or search endpoint in increasing
// page order and concatenates the results. It stops on an empty page, a
// short page, the maxItems cap (truncating to it), or the upstream
// search window.
//
// Each page gets a bounded retry with fixed backoff and its own
// wall-clock timeout; when retries run out the accumulated items are
// returned as-is. Partial results are success here, not failure: the
// only errors that surface are rate-limit exhaustion and not-found,
// which the caller must not paper over.
func fetchAllPages[T any](ctx context.Context, maxItems int, fetch pageFunc[T]) ([]T, error) {
	var items []T
	perPage := defaultPageSize

	for page := 1; ; page++ {
		pageItems, err := fetchPageWithRetry(ctx, page, perPage, fetch)
		if err != nil {
			if isSearchWindowExhausted(err) {
				return items, nil
			}
			if wrapped.IsRateLimited(err) || wrapped.IsNotFound(err) {
				return items, err
			}
			// Retries exhausted on a transient failure: keep what we have.
			return items, nil
		}

		items = append(items, pageItems...)

		if maxItems > 0 && len(items) >= maxItems {
			return items[:maxItems], nil
		}
		if len(pageItems) < perPage {
			return items, nil
		}
		if maxItems <= 0 && len(items) >= searchResultCap {
			return items, nil
		}
	}
}

func fetchPageWithRetry[T any](ctx context.Context, page, perPage int, fetch pageFunc[T]) ([]T, error) {
	var lastErr error
	for attempt := 0; attempt < pageRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		pageCtx, cancel := context.WithTimeout(ctx, pageTimeout)
		items, err := fetch(pageCtx, page, perPage)
		cancel()

		if err == nil {
			return items, nil
		}
		if isSearchWindowExhausted(err) || wrapped.IsRateLimited(err) || wrapped.IsNotFound(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
