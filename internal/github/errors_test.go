package github

import (
	"errors"
	"net/http"
	"testing"
	"time"

	gogithub "github.com/google/go-github/v81/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-wrapped/internal/wrapped"
)

func responseWithStatus(status int, rate gogithub.Rate) *gogithub.Response {
	return &gogithub.Response{
		Response: &http.Response{StatusCode: status},
		Rate:     rate,
	}
}

func TestTranslateError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, translateError("op", nil, nil))
	})

	t.Run("rate limit error carries the reset time", func(t *testing.T) {
		reset := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		upstream := &gogithub.RateLimitError{
			Rate: gogithub.Rate{
				Limit:     5000,
				Remaining: 0,
				Reset:     gogithub.Timestamp{Time: reset},
			},
		}

		err := translateError("search commits", upstream, nil)

		require.True(t, wrapped.IsRateLimited(err))
		var rateErr *wrapped.RateLimitError
		require.ErrorAs(t, err, &rateErr)
		assert.Equal(t, reset, rateErr.ResetAt)
		assert.Equal(t, 5000, rateErr.Limit)
	})

	t.Run("abuse detection maps to rate limiting", func(t *testing.T) {
		after := 45 * time.Second
		upstream := &gogithub.AbuseRateLimitError{RetryAfter: &after}

		err := translateError("search commits", upstream, nil)

		assert.True(t, wrapped.IsRateLimited(err))
	})

	t.Run("404 maps to the not-found sentinel", func(t *testing.T) {
		resp := responseWithStatus(http.StatusNotFound, gogithub.Rate{})

		err := translateError("get user", errors.New("404 Not Found"), resp)

		assert.True(t, wrapped.IsNotFound(err))
		assert.False(t, wrapped.IsRateLimited(err))
	})

	t.Run("429 maps to rate limiting", func(t *testing.T) {
		resp := responseWithStatus(http.StatusTooManyRequests, gogithub.Rate{Limit: 60})

		err := translateError("list events", errors.New("429"), resp)

		assert.True(t, wrapped.IsRateLimited(err))
	})

	t.Run("403 with exhausted quota maps to rate limiting", func(t *testing.T) {
		resp := responseWithStatus(http.StatusForbidden, gogithub.Rate{Limit: 60, Remaining: 0})

		err := translateError("list events", errors.New("403"), resp)

		assert.True(t, wrapped.IsRateLimited(err))
	})

	t.Run("403 with quota left is not rate limiting", func(t *testing.T) {
		resp := responseWithStatus(http.StatusForbidden, gogithub.Rate{Limit: 60, Remaining: 12})

		err := translateError("list events", errors.New("403 SAML enforcement"), resp)

		require.Error(t, err)
		assert.False(t, wrapped.IsRateLimited(err))
		assert.False(t, wrapped.IsNotFound(err))
	})

	t.Run("other failures keep the operation context", func(t *testing.T) {
		err := translateError("search commits", errors.New("connection reset"), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search commits")
		assert.False(t, wrapped.IsRateLimited(err))
		assert.False(t, wrapped.IsNotFound(err))
	})
}

func TestIsSearchWindowExhausted(t *testing.T) {
	assert.True(t, isSearchWindowExhausted(windowExhaustedErr()))

	badRequest := &gogithub.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusBadRequest},
	}
	assert.False(t, isSearchWindowExhausted(badRequest))
	assert.False(t, isSearchWindowExhausted(errors.New("422 but not an API error")))
	assert.False(t, isSearchWindowExhausted(nil))
}
