package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github-wrapped/internal/cache"
	"github-wrapped/internal/config"
	"github-wrapped/internal/display"
	"github-wrapped/internal/github"
	"github-wrapped/internal/wrapped"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		display.DisplayError(fmt.Sprintf("Configuration error: %v", err))
		os.Exit(1)
	}

	ctx := context.Background()

	source, username, err := buildSource(ctx, cfg)
	if err != nil {
		display.DisplayError(err.Error())
		os.Exit(1)
	}

	if cfg.Guest() {
		display.DisplayWarning(fmt.Sprintf(
			"Guest mode: statistics for %s are derived from the last ~300 public events", username))
	}

	snapshots := cache.New(!cfg.NoCache)
	snapshot, fromCache := snapshots.Get(username, cfg.Year)
	if !fromCache {
		snapshot, err = computeSnapshot(ctx, source, username, cfg.Year)
		if err != nil {
			exitWithComputeError(err, cfg.Guest())
		}
		snapshots.Set(username, cfg.Year, snapshot)
		display.DisplaySuccess("Statistics calculated successfully")
	} else {
		display.DisplaySuccess("Loaded snapshot from cache")
	}

	if earliest := wrapped.EarliestYear(&snapshot.Profile, time.Now()); cfg.Year < earliest {
		display.DisplayWarning(fmt.Sprintf(
			"The account was created in %d; %d predates it", earliest, cfg.Year))
	}

	formatter := display.NewFormatter(cfg.Format)
	if err := formatter.Display(display.BuildReport(snapshot)); err != nil {
		display.DisplayError(fmt.Sprintf("Failed to display statistics: %v", err))
		os.Exit(1)
	}
}

// buildSource picks the authenticated or guest data source based on
// whether a token is configured, and resolves the subject's username.
func buildSource(ctx context.Context, cfg *config.Config) (wrapped.Source, string, error) {
	if cfg.Guest() {
		return github.NewPublicClient(cfg.Username), cfg.Username, nil
	}

	client := github.NewClient(ctx, cfg.Token, cfg.Username, cfg.Exact, cfg.MaxWorkers)

	username := cfg.Username
	if username == "" {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Getting authenticated user..."
		s.Start()

		login, err := client.AuthenticatedLogin(ctx)
		s.Stop()

		if err != nil {
			return nil, "", fmt.Errorf("failed to get authenticated user: %v", err)
		}
		username = login
		client.SetUsername(username)
		display.DisplaySuccess(fmt.Sprintf("Authenticated as: %s", username))
	}

	if err := checkRateLimit(ctx, client); err != nil {
		display.DisplayWarning(fmt.Sprintf("Rate limit check failed: %v", err))
	}

	return client, username, nil
}

func computeSnapshot(ctx context.Context, source wrapped.Source, username string, year int) (*wrapped.Snapshot, error) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	_, _ = cyan.Printf("🎁 Wrapping up %d for %s...\n", year, username)
	fmt.Println()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Gathering commits, PRs, issues, reviews and languages..."
	s.Start()
	defer s.Stop()

	orchestrator := wrapped.NewOrchestrator(source, func(format string, args ...any) {
		// Degraded signals surface as lower numbers, not failures; keep a
		// trace for the curious.
		fmt.Fprintf(os.Stderr, "note: "+format+"\n", args...)
	})
	return orchestrator.ComputeYearWrapped(ctx, username, year)
}

func exitWithComputeError(err error, guest bool) {
	switch {
	case wrapped.IsNotFound(err):
		display.DisplayError("User not found. Double-check the username.")
	case wrapped.IsRateLimited(err):
		if guest {
			display.DisplayError("API rate limit exhausted. Guest mode allows 60 requests/hour; sign in with a token (--token or GITHUB_TOKEN) for higher limits.")
		} else {
			display.DisplayError(fmt.Sprintf("API rate limit exhausted: %v. Try again after the limit resets.", err))
		}
	default:
		display.DisplayError(fmt.Sprintf("Failed to calculate statistics: %v", err))
	}
	os.Exit(1)
}

func checkRateLimit(ctx context.Context, client *github.Client) error {
	limits, err := client.RateLimits(ctx)
	if err != nil {
		return err
	}

	if limits.Core != nil {
		remaining := limits.Core.Remaining
		limit := limits.Core.Limit
		reset := limits.Core.Reset.Time

		if remaining < 100 {
			display.DisplayWarning(fmt.Sprintf(
				"API Rate Limit: %d/%d remaining (resets at %s)",
				remaining, limit, reset.Format("15:04:05"),
			))
		} else {
			display.DisplaySuccess(fmt.Sprintf(
				"API Rate Limit: %d/%d remaining",
				remaining, limit,
			))
		}
	}

	return nil
}
