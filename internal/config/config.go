package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// githubFoundedYear is the floor for the -year flag; nothing worth
// wrapping predates the platform.
const githubFoundedYear = 2008

type Config struct {
	Token      string
	Username   string
	Year       int
	Exact      bool
	NoCache    bool
	Format     string
	MaxWorkers int
}

// Guest reports whether the run has no credential and must use the
// public API surface.
func (c *Config) Guest() bool {
	return c.Token == ""
}

func Load() (*Config, error) {
	// A local .env is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.Token, "token", "", "GitHub Personal Access Token (overrides GITHUB_TOKEN env; omit for guest mode)")
	flag.StringVar(&cfg.Username, "user", "", "GitHub username to analyze (defaults to the authenticated user)")
	flag.IntVar(&cfg.Year, "year", time.Now().Year(), "Calendar year to wrap")
	flag.BoolVar(&cfg.Exact, "exact", false, "Compute exact line counts from diff stats (slower, authenticated only)")
	flag.BoolVar(&cfg.NoCache, "no-cache", false, "Disable snapshot caching")
	flag.StringVar(&cfg.Format, "format", "table", "Output format: table, json")
	flag.IntVar(&cfg.MaxWorkers, "workers", 10, "Maximum concurrent API requests")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: github-wrapped [options]\n\n")
		fmt.Fprintf(os.Stderr, "A CLI tool that computes a GitHub year-in-review summary.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  github-wrapped --user octocat --year 2025\n")
		fmt.Fprintf(os.Stderr, "  github-wrapped --token ghp_xxx --exact --format json\n")
		fmt.Fprintf(os.Stderr, "\nAuthentication:\n")
		fmt.Fprintf(os.Stderr, "  Set GITHUB_TOKEN (or a .env file) or use --token for higher rate limits\n")
		fmt.Fprintf(os.Stderr, "  and richer statistics. Without a token, guest mode derives everything\n")
		fmt.Fprintf(os.Stderr, "  from the user's last ~300 public events.\n")
	}

	flag.Parse()

	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Guest() && c.Username == "" {
		return fmt.Errorf("a username is required in guest mode: pass --user or set GITHUB_TOKEN")
	}

	if c.Guest() && c.Exact {
		return fmt.Errorf("--exact requires a token: diff stats are not worth the guest rate budget")
	}

	if c.Format != "table" && c.Format != "json" {
		return fmt.Errorf("invalid format: %s (must be 'table' or 'json')", c.Format)
	}

	if c.Year < githubFoundedYear || c.Year > time.Now().Year() {
		return fmt.Errorf("year must be between %d and %d", githubFoundedYear, time.Now().Year())
	}

	if c.MaxWorkers < 1 || c.MaxWorkers > 50 {
		return fmt.Errorf("workers must be between 1 and 50")
	}

	return nil
}
