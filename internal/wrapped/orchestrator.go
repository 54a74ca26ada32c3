package wrapped

import (
	"context"
	"sync"
	"time"
)

// Default line estimation multipliers, used when a source cannot afford
// real diff stats.
const (
	EstimatedAddedPerCommit   = 50
	EstimatedDeletedPerCommit = 20
)

// WarnFunc receives degradation notices from collectors that fell back to
// default values.
type WarnFunc func(format string, args ...any)

// Orchestrator runs every collector against a Source concurrently and
// folds the raw results into a Snapshot.
type Orchestrator struct {
	source Source
	warn   WarnFunc
}

// NewOrchestrator builds an orchestrator over the given source. The warn
// hook may be nil.
func NewOrchestrator(source Source, warn WarnFunc) *Orchestrator {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return &Orchestrator{source: source, warn: warn}
}

// ComputeYearWrapped assembles the statistics snapshot for one
// (username, year) pair.
//
// Independent collectors run in parallel; each absorbs its own failures
// and contributes a zero value instead, so a snapshot is always
// assembled. The two exceptions are rate-limit exhaustion and an unknown
// user: either aborts the whole run, since a silently all-zero snapshot
// would be misleading in those cases.
func (o *Orchestrator) ComputeYearWrapped(ctx context.Context, username string, year int) (*Snapshot, error) {
	profile, err := o.source.Profile(ctx)
	if err != nil {
		if fatal(err) {
			return nil, err
		}
		// Degrade to a synthesized login-only profile; the rest of the
		// pipeline still runs.
		o.warn("profile fetch failed, using minimal profile: %v", err)
		profile = &Profile{Login: username}
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex

		commits       []Commit
		prsMerged     int
		issuesClosed  int
		repos         []Repository
		reviewedLines int
		followers     int
		collaborators []Collaborator

		firstFatal error
	)

	fail := func(err error) {
		mu.Lock()
		if firstFatal == nil {
			firstFatal = err
		}
		mu.Unlock()
	}

	collect := func(name string, fn func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				if fatal(err) {
					fail(err)
					return
				}
				o.warn("%s collector degraded to defaults: %v", name, err)
			}
		}()
	}

	collect("commit", func(ctx context.Context) error {
		result, err := o.source.Commits(ctx, year)
		mu.Lock()
		commits = result
		mu.Unlock()
		return err
	})
	collect("pull-request", func(ctx context.Context) error {
		count, err := o.source.MergedPullRequests(ctx, year)
		mu.Lock()
		prsMerged = count
		mu.Unlock()
		return err
	})
	collect("issue", func(ctx context.Context) error {
		count, err := o.source.ClosedIssues(ctx, year)
		mu.Lock()
		issuesClosed = count
		mu.Unlock()
		return err
	})
	collect("repository", func(ctx context.Context) error {
		result, err := o.source.Repositories(ctx)
		mu.Lock()
		repos = result
		mu.Unlock()
		return err
	})
	collect("review", func(ctx context.Context) error {
		lines, err := o.source.ReviewedLines(ctx, year)
		mu.Lock()
		reviewedLines = lines
		mu.Unlock()
		return err
	})
	collect("follower", func(ctx context.Context) error {
		count, err := o.source.Followers(ctx)
		mu.Lock()
		followers = count
		mu.Unlock()
		return err
	})
	collect("collaborator", func(ctx context.Context) error {
		result, err := o.source.Collaborators(ctx, year)
		mu.Lock()
		collaborators = result
		mu.Unlock()
		return err
	})

	wg.Wait()

	if firstFatal != nil {
		return nil, firstFatal
	}

	// Language bytes and line stats need the repo and commit lists, so
	// they run after the fan-in rather than alongside it.
	languageBytes, err := o.source.LanguageBytes(ctx, repos)
	if err != nil {
		if fatal(err) {
			return nil, err
		}
		o.warn("language collector degraded to defaults: %v", err)
	}

	lines, err := o.source.Lines(ctx, commits)
	if err != nil {
		if fatal(err) {
			return nil, err
		}
		o.warn("line-count collector degraded to estimate: %v", err)
		lines = EstimateLines(len(commits), EstimatedAddedPerCommit, EstimatedDeletedPerCommit)
	}

	topLanguages := TopLanguagesFromBytes(languageBytes)
	if len(topLanguages) == 0 {
		topLanguages = TopLanguagesFromRepos(repos)
	}

	productivity := AnalyzeProductivity(commitTimes(commits))

	if followers == 0 {
		followers = profile.Followers
	}

	return &Snapshot{
		Username:            username,
		Year:                year,
		TotalCommits:        len(commits),
		TotalPRsMerged:      prsMerged,
		TotalIssuesResolved: issuesClosed,
		Lines:               lines,
		ReviewedLines:       reviewedLines,
		Followers:           followers,
		FavoriteRepo:        FavoriteRepo(commits, repos),
		AITools:             DetectAITools(commits),
		TopLanguages:        topLanguages,
		StreakDays:          productivity.StreakDays,
		MostProductiveDay:   productivity.Day,
		MostProductiveHour:  productivity.Hour,
		MostProductiveMonth: productivity.Month,
		TopCollaborators:    RankCollaborators(collaborators),
		Profile:             *profile,
	}, nil
}

func commitTimes(commits []Commit) []time.Time {
	times := make([]time.Time, 0, len(commits))
	for _, commit := range commits {
		if !commit.When.IsZero() {
			times = append(times, commit.When)
		}
	}
	return times
}

// EarliestYear reports the first year worth wrapping for a profile: the
// account creation year, or five years back when the creation date is
// unknown.
func EarliestYear(profile *Profile, now time.Time) int {
	if profile == nil || profile.CreatedAt.IsZero() {
		return now.Year() - 5
	}
	return profile.CreatedAt.Year()
}
