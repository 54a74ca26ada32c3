package github

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-wrapped/internal/wrapped"
)

func TestYearRange(t *testing.T) {
	assert.Equal(t, "2025-01-01..2025-12-31", yearRange(2025))
}

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		name      string
		fullName  string
		wantOwner string
		wantRepo  string
	}{
		{"owner and repo", "octocat/hello-world", "octocat", "hello-world"},
		{"repo with slashes keeps the rest", "octocat/a/b", "octocat", "a/b"},
		{"missing repo", "octocat", "", ""},
		{"missing owner", "/hello-world", "", ""},
		{"trailing slash", "octocat/", "", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo := splitFullName(tt.fullName)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
		})
	}
}

func TestSplitRepoURL(t *testing.T) {
	owner, repo := splitRepoURL("https://api.github.com/repos/octocat/hello-world")
	assert.Equal(t, "octocat", owner)
	assert.Equal(t, "hello-world", repo)

	owner, repo = splitRepoURL("https://example.com/not-a-repo-url")
	assert.Empty(t, owner)
	assert.Empty(t, repo)
}

func TestClientLinesEstimate(t *testing.T) {
	// Without -exact the line count is a pure multiplier estimate and
	// never touches the network.
	client := NewClient(context.Background(), "token", "octocat", false, 4)

	commits := make([]wrapped.Commit, 10)
	stats, err := client.Lines(context.Background(), commits)

	require.NoError(t, err)
	assert.Equal(t, wrapped.LineStats{Added: 500, Deleted: 200, Net: 300}, stats)
}

func TestPublicClientLinesEstimate(t *testing.T) {
	client := NewPublicClient("octocat")

	commits := make([]wrapped.Commit, 4)
	stats, err := client.Lines(context.Background(), commits)

	require.NoError(t, err)
	assert.Equal(t, wrapped.LineStats{Added: 120, Deleted: 60, Net: 60}, stats)
}

func TestCollaboratorList(t *testing.T) {
	order := []string{"hubot", "mona"}
	counts := map[string]int{"hubot": 2, "mona": 5}
	avatars := map[string]string{"mona": "https://example.com/mona.png"}

	list := collaboratorList(order, counts, avatars)

	require.Len(t, list, 2)
	assert.Equal(t, wrapped.Collaborator{Username: "hubot", Interactions: 2}, list[0])
	assert.Equal(t, wrapped.Collaborator{Username: "mona", AvatarURL: "https://example.com/mona.png", Interactions: 5}, list[1])
}
