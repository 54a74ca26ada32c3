package github

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	gogithub "github.com/google/go-github/v81/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedEvents bypasses the network fetch by consuming the memoization slot
// with a canned feed.
func seedEvents(c *PublicClient, events []*gogithub.Event) {
	c.eventsOnce.Do(func() {
		c.events = events
	})
}

func rawPayload(t *testing.T, payload any) *json.RawMessage {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	raw := json.RawMessage(data)
	return &raw
}

func event(t *testing.T, eventType, repo string, createdAt time.Time, payload any) *gogithub.Event {
	return &gogithub.Event{
		Type:       gogithub.Ptr(eventType),
		Repo:       &gogithub.Repository{Name: gogithub.Ptr(repo)},
		CreatedAt:  &gogithub.Timestamp{Time: createdAt},
		RawPayload: rawPayload(t, payload),
	}
}

func TestPublicClientCommits(t *testing.T) {
	ctx := context.Background()
	in2025 := time.Date(2025, time.April, 10, 15, 0, 0, 0, time.UTC)
	in2024 := time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)

	client := NewPublicClient("octocat")
	seedEvents(client, []*gogithub.Event{
		event(t, "PushEvent", "octocat/widgets", in2025, &gogithub.PushEvent{
			Commits: []*gogithub.HeadCommit{
				{SHA: gogithub.Ptr("aaa"), Message: gogithub.Ptr("first")},
				{SHA: gogithub.Ptr("bbb"), Message: gogithub.Ptr("second")},
			},
		}),
		// A push with an empty payload still counts as one commit.
		event(t, "PushEvent", "octocat/gadgets", in2025, &gogithub.PushEvent{}),
		// Wrong year, must be filtered out.
		event(t, "PushEvent", "octocat/widgets", in2024, &gogithub.PushEvent{
			Commits: []*gogithub.HeadCommit{{SHA: gogithub.Ptr("old")}},
		}),
		// Non-push events contribute nothing here.
		event(t, "WatchEvent", "octocat/widgets", in2025, &gogithub.WatchEvent{}),
	})

	commits, err := client.Commits(ctx, 2025)

	require.NoError(t, err)
	require.Len(t, commits, 3)
	assert.Equal(t, "aaa", commits[0].SHA)
	assert.Equal(t, "octocat/widgets", commits[0].Repo)
	assert.Equal(t, "first", commits[0].Message)
	assert.Equal(t, in2025, commits[0].When)
	assert.Empty(t, commits[2].SHA, "synthesized commit for the empty push")
}

func TestPublicClientEventCounts(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	client := NewPublicClient("octocat")
	seedEvents(client, []*gogithub.Event{
		event(t, "PullRequestEvent", "octocat/widgets", when, &gogithub.PullRequestEvent{Action: gogithub.Ptr("opened")}),
		event(t, "PullRequestEvent", "octocat/widgets", when, &gogithub.PullRequestEvent{Action: gogithub.Ptr("closed")}),
		event(t, "PullRequestEvent", "octocat/widgets", when, &gogithub.PullRequestEvent{Action: gogithub.Ptr("synchronize")}),
		event(t, "IssuesEvent", "octocat/widgets", when, &gogithub.IssuesEvent{Action: gogithub.Ptr("closed")}),
		event(t, "IssuesEvent", "octocat/widgets", when, &gogithub.IssuesEvent{Action: gogithub.Ptr("labeled")}),
	})

	prs, err := client.MergedPullRequests(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2, prs, "opened and closed count, synchronize does not")

	issues, err := client.ClosedIssues(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, issues)
}

func TestPublicClientCollaborators(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	client := NewPublicClient("octocat")
	seedEvents(client, []*gogithub.Event{
		event(t, "PushEvent", "octocat/widgets", when, &gogithub.PushEvent{}),
		event(t, "PushEvent", "hubot/tools", when, &gogithub.PushEvent{}),
		event(t, "PullRequestEvent", "hubot/tools", when, &gogithub.PullRequestEvent{Action: gogithub.Ptr("opened")}),
		event(t, "PushEvent", "mona/site", when, &gogithub.PushEvent{}),
	})

	collaborators, err := client.Collaborators(ctx, 2025)

	require.NoError(t, err)
	require.Len(t, collaborators, 2, "the subject's own repos never count")
	assert.Equal(t, "hubot", collaborators[0].Username)
	assert.Equal(t, 2, collaborators[0].Interactions)
	assert.Equal(t, "mona", collaborators[1].Username)
}

func TestPublicClientReviewedLines(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	client := NewPublicClient("octocat")
	seedEvents(client, []*gogithub.Event{
		event(t, "PushEvent", "octocat/widgets", when, &gogithub.PushEvent{
			Commits: []*gogithub.HeadCommit{
				{SHA: gogithub.Ptr("aaa")},
				{SHA: gogithub.Ptr("bbb")},
			},
		}),
	})

	lines, err := client.ReviewedLines(ctx, 2025)

	require.NoError(t, err)
	assert.Equal(t, 2*guestReviewedPerCommit, lines)
}
