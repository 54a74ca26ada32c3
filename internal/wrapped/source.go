package wrapped

import "context"

// Source is the set of read operations the orchestrator needs to build a
// snapshot. Two implementations exist: an authenticated client against
// the full API surface, and a guest client that derives everything from
// the public event feed. The orchestrator is mode-agnostic; the degraded
// fidelity of guest mode lives entirely inside its Source.
//
// Every method that cannot answer for transient reasons should return a
// zero value and a nil error, or a nil error alongside whatever partial
// data it gathered. Only rate-limit and not-found conditions are
// returned as errors.
type Source interface {
	// Profile fetches the subject's public profile.
	Profile(ctx context.Context) (*Profile, error)

	// Commits returns the subject's commits within the calendar year.
	Commits(ctx context.Context, year int) ([]Commit, error)

	// MergedPullRequests counts the subject's PRs merged within the year.
	MergedPullRequests(ctx context.Context, year int) (int, error)

	// ClosedIssues counts the subject's issues closed within the year.
	ClosedIssues(ctx context.Context, year int) (int, error)

	// Repositories lists repositories the subject owns or collaborates on.
	Repositories(ctx context.Context) ([]Repository, error)

	// LanguageBytes sums per-language byte counts across repos. Sources
	// without access to language bytes return an empty map; the
	// orchestrator then falls back to per-repo language counts.
	LanguageBytes(ctx context.Context, repos []Repository) (map[string]int64, error)

	// ReviewedLines reports how many lines of code the subject reviewed
	// during the year, estimated or exact depending on the source.
	ReviewedLines(ctx context.Context, year int) (int, error)

	// Followers returns the subject's current follower total. Historical
	// "followers gained" is not derivable from the upstream API and is
	// deliberately not part of this interface.
	Followers(ctx context.Context) (int, error)

	// Collaborators returns unranked interaction counts with other users.
	Collaborators(ctx context.Context, year int) ([]Collaborator, error)

	// Lines computes or estimates lines of code changed by the given
	// commits.
	Lines(ctx context.Context, commits []Commit) (LineStats, error)
}
