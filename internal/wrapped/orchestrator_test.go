package wrapped

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource scripts every Source operation so orchestration behavior
// can be pinned down without any network.
type fakeSource struct {
	profile    *Profile
	profileErr error

	commits    []Commit
	commitsErr error

	prs    int
	prsErr error

	issues    int
	issuesErr error

	repos    []Repository
	reposErr error

	languageBytes map[string]int64

	reviewedLines int
	reviewedErr   error

	followers    int
	followersErr error

	collaborators []Collaborator

	lines    LineStats
	linesErr error
}

func (f *fakeSource) Profile(ctx context.Context) (*Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeSource) Commits(ctx context.Context, year int) ([]Commit, error) {
	return f.commits, f.commitsErr
}

func (f *fakeSource) MergedPullRequests(ctx context.Context, year int) (int, error) {
	return f.prs, f.prsErr
}

func (f *fakeSource) ClosedIssues(ctx context.Context, year int) (int, error) {
	return f.issues, f.issuesErr
}

func (f *fakeSource) Repositories(ctx context.Context) ([]Repository, error) {
	return f.repos, f.reposErr
}

func (f *fakeSource) LanguageBytes(ctx context.Context, repos []Repository) (map[string]int64, error) {
	return f.languageBytes, nil
}

func (f *fakeSource) ReviewedLines(ctx context.Context, year int) (int, error) {
	return f.reviewedLines, f.reviewedErr
}

func (f *fakeSource) Followers(ctx context.Context) (int, error) {
	return f.followers, f.followersErr
}

func (f *fakeSource) Collaborators(ctx context.Context, year int) ([]Collaborator, error) {
	return f.collaborators, nil
}

func (f *fakeSource) Lines(ctx context.Context, commits []Commit) (LineStats, error) {
	return f.lines, f.linesErr
}

func commitOn(repo string, when time.Time, message string) Commit {
	return Commit{SHA: "abc", Repo: repo, When: when, Message: message}
}

func TestComputeYearWrapped(t *testing.T) {
	jan6 := time.Date(2025, time.January, 6, 22, 0, 0, 0, time.UTC)

	src := &fakeSource{
		profile: &Profile{Login: "octocat", Followers: 7, CreatedAt: time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)},
		commits: []Commit{
			commitOn("octocat/widgets", jan6, "add widget"),
			commitOn("octocat/widgets", jan6.AddDate(0, 0, 1), "claude helped here"),
			commitOn("octocat/gadgets", jan6.AddDate(0, 0, 2), "fix gadget"),
		},
		prs:           12,
		issues:        4,
		repos:         []Repository{{FullName: "octocat/widgets", Language: "Go", Stars: 30}},
		languageBytes: map[string]int64{"Go": 900, "Shell": 100},
		reviewedLines: 6000,
		followers:     7,
		collaborators: []Collaborator{
			{Username: "hubot", Interactions: 3},
			{Username: "mona", Interactions: 5},
		},
		lines: LineStats{Added: 150, Deleted: 60, Net: 90},
	}

	snapshot, err := NewOrchestrator(src, nil).ComputeYearWrapped(context.Background(), "octocat", 2025)
	require.NoError(t, err)

	assert.Equal(t, "octocat", snapshot.Username)
	assert.Equal(t, 2025, snapshot.Year)
	assert.Equal(t, 3, snapshot.TotalCommits)
	assert.Equal(t, 12, snapshot.TotalPRsMerged)
	assert.Equal(t, 4, snapshot.TotalIssuesResolved)
	assert.Equal(t, LineStats{Added: 150, Deleted: 60, Net: 90}, snapshot.Lines)
	assert.Equal(t, snapshot.Lines.Added-snapshot.Lines.Deleted, snapshot.Lines.Net)
	assert.Equal(t, 6000, snapshot.ReviewedLines)
	assert.Equal(t, 7, snapshot.Followers)

	require.NotNil(t, snapshot.FavoriteRepo)
	assert.Equal(t, "octocat/widgets", snapshot.FavoriteRepo.Name)
	assert.Equal(t, 2, snapshot.FavoriteRepo.Commits)
	assert.Equal(t, 30, snapshot.FavoriteRepo.Stars)

	require.Len(t, snapshot.AITools, 1)
	assert.Equal(t, "Claude", snapshot.AITools[0].Name)

	require.Len(t, snapshot.TopLanguages, 2)
	assert.Equal(t, LanguageShare{Name: "Go", Percentage: 90}, snapshot.TopLanguages[0])

	assert.Equal(t, 3, snapshot.StreakDays)
	assert.Equal(t, 22, snapshot.MostProductiveHour)
	assert.Equal(t, "January", snapshot.MostProductiveMonth)

	require.Len(t, snapshot.TopCollaborators, 2)
	assert.Equal(t, "mona", snapshot.TopCollaborators[0].Username)

	assert.Equal(t, "octocat", snapshot.Profile.Login)
}

func TestComputeYearWrappedEmptyGuestFeed(t *testing.T) {
	// An inactive user in guest mode: no events at all, but a public repo
	// list. The snapshot must be conservative, not an error.
	src := &fakeSource{
		profile: &Profile{Login: "ghost", Followers: 2},
		repos:   []Repository{{FullName: "ghost/dotfiles", Language: "Shell"}},
	}

	snapshot, err := NewOrchestrator(src, nil).ComputeYearWrapped(context.Background(), "ghost", 2025)
	require.NoError(t, err)

	assert.Zero(t, snapshot.TotalCommits)
	assert.Zero(t, snapshot.TotalPRsMerged)
	assert.Zero(t, snapshot.TotalIssuesResolved)
	assert.Nil(t, snapshot.FavoriteRepo)
	assert.Empty(t, snapshot.AITools)
	assert.Zero(t, snapshot.StreakDays)
	assert.Equal(t, 2, snapshot.Followers, "falls back to the profile total")

	// Languages still come from the repo list even with zero events.
	require.Len(t, snapshot.TopLanguages, 1)
	assert.Equal(t, LanguageShare{Name: "Shell", Percentage: 100}, snapshot.TopLanguages[0])
}

func TestComputeYearWrappedDegradesTransientFailures(t *testing.T) {
	boom := errors.New("upstream hiccup")
	src := &fakeSource{
		profile:     &Profile{Login: "octocat"},
		commits:     []Commit{commitOn("octocat/widgets", time.Now(), "work")},
		prsErr:      boom,
		issuesErr:   boom,
		reviewedErr: boom,
		reposErr:    boom,
		lines:       LineStats{Added: 50, Deleted: 20, Net: 30},
	}

	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, format)
	}

	snapshot, err := NewOrchestrator(src, warn).ComputeYearWrapped(context.Background(), "octocat", 2025)

	require.NoError(t, err, "transient collector failures never fail the run")
	assert.Zero(t, snapshot.TotalPRsMerged)
	assert.Zero(t, snapshot.TotalIssuesResolved)
	assert.Zero(t, snapshot.ReviewedLines)
	assert.Equal(t, 1, snapshot.TotalCommits)
	assert.NotEmpty(t, warnings)
}

func TestComputeYearWrappedRateLimitShortCircuits(t *testing.T) {
	src := &fakeSource{
		profile:    &Profile{Login: "octocat"},
		commitsErr: &RateLimitError{ResetAt: time.Now().Add(time.Hour)},
	}

	snapshot, err := NewOrchestrator(src, nil).ComputeYearWrapped(context.Background(), "octocat", 2025)

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.Nil(t, snapshot)
}

func TestComputeYearWrappedUnknownUser(t *testing.T) {
	src := &fakeSource{profileErr: ErrUserNotFound}

	snapshot, err := NewOrchestrator(src, nil).ComputeYearWrapped(context.Background(), "nobody", 2025)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsRateLimited(err))
	assert.Nil(t, snapshot)
}

func TestComputeYearWrappedProfileFallback(t *testing.T) {
	// A transient profile failure degrades to a synthesized login-only
	// profile; the pipeline still runs.
	src := &fakeSource{
		profileErr: errors.New("timeout"),
		commits:    []Commit{commitOn("octocat/widgets", time.Now(), "work")},
		lines:      LineStats{Added: 50, Deleted: 20, Net: 30},
	}

	snapshot, err := NewOrchestrator(src, nil).ComputeYearWrapped(context.Background(), "octocat", 2025)

	require.NoError(t, err)
	assert.Equal(t, "octocat", snapshot.Profile.Login)
	assert.Equal(t, 1, snapshot.TotalCommits)
}

func TestEarliestYear(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	t.Run("uses account creation year", func(t *testing.T) {
		profile := &Profile{CreatedAt: time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)}
		assert.Equal(t, 2019, EarliestYear(profile, now))
	})

	t.Run("falls back five years without a creation date", func(t *testing.T) {
		assert.Equal(t, 2021, EarliestYear(&Profile{}, now))
		assert.Equal(t, 2021, EarliestYear(nil, now))
	})
}
