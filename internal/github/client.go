package github

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"

	"github-wrapped/internal/wrapped"
)

const (
	// estimatedLinesPerReview backs the cheap review-volume estimate:
	// reviewed PR count times an assumed average diff size.
	estimatedLinesPerReview = 200

	// Exact line counting inspects at most this many commits, in batches,
	// with a pause between batches to stay under the rate ceiling.
	exactCommitSample = 200
	exactBatchSize    = 10
	exactBatchDelay   = 500 * time.Millisecond

	// exactReviewSample bounds how many reviewed PRs the exact review
	// variant fetches diff stats for.
	exactReviewSample = 50

	// collaboratorRepoSample bounds how many of the user's own repos are
	// mined for pull-request authors.
	collaboratorRepoSample = 10
)

// Client implements wrapped.Source against the authenticated API
// surface: commit search, issue/PR search, repos for the authenticated
// user, per-repo language bytes and diff stats.
type Client struct {
	gh         *github.Client
	username   string
	exact      bool
	maxWorkers int
	throttle   *throttle
}

// NewClient builds an authenticated client for the given user. When
// exact is set, line counts and review volume come from budget-limited
// diff-stat sampling instead of multiplier estimates.
func NewClient(ctx context.Context, token, username string, exact bool, maxWorkers int) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	if maxWorkers < 1 {
		maxWorkers = 1
	}

	return &Client{
		gh:         github.NewClient(tc),
		username:   username,
		exact:      exact,
		maxWorkers: maxWorkers,
		throttle:   newThrottle(authenticatedRate),
	}
}

// AuthenticatedLogin resolves the login of the token owner. Used when no
// explicit username was configured.
func (c *Client) AuthenticatedLogin(ctx context.Context) (string, error) {
	if err := c.throttle.wait(ctx); err != nil {
		return "", err
	}
	user, resp, err := c.gh.Users.Get(ctx, "")
	c.throttle.observe(resp)
	if err != nil {
		return "", translateError("get authenticated user", err, resp)
	}
	if user.GetLogin() == "" {
		return "", fmt.Errorf("authenticated user has no login")
	}
	return user.GetLogin(), nil
}

// SetUsername fixes the subject after login resolution.
func (c *Client) SetUsername(username string) {
	c.username = username
}

// RateLimits reports the current API quota.
func (c *Client) RateLimits(ctx context.Context) (*github.RateLimits, error) {
	limits, _, err := c.gh.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("check rate limit: %w", err)
	}
	return limits, nil
}

func (c *Client) Profile(ctx context.Context) (*wrapped.Profile, error) {
	if err := c.throttle.wait(ctx); err != nil {
		return nil, err
	}
	user, resp, err := c.gh.Users.Get(ctx, c.username)
	c.throttle.observe(resp)
	if err != nil {
		return nil, translateError("get user", err, resp)
	}
	return &wrapped.Profile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		Bio:         user.GetBio(),
		Company:     user.GetCompany(),
		Location:    user.GetLocation(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		PublicRepos: user.GetPublicRepos(),
		PublicGists: user.GetPublicGists(),
		CreatedAt:   user.GetCreatedAt().Time,
	}, nil
}

// Commits pages through the commit-search endpoint filtered by author
// and committer-date range. Subject to the upstream 1000-result window;
// hitting it truncates cleanly.
func (c *Client) Commits(ctx context.Context, year int) ([]wrapped.Commit, error) {
	query := fmt.Sprintf("author:%s committer-date:%s", c.username, yearRange(year))

	results, err := fetchAllPages(ctx, searchResultCap, func(ctx context.Context, page, perPage int) ([]*github.CommitResult, error) {
		if err := c.throttle.wait(ctx); err != nil {
			return nil, err
		}
		opts := &github.SearchOptions{
			Sort:        "committer-date",
			Order:       "desc",
			ListOptions: github.ListOptions{PerPage: perPage, Page: page},
		}
		result, resp, err := c.gh.Search.Commits(ctx, query, opts)
		c.throttle.observe(resp)
		if err != nil {
			return nil, translateError("search commits", err, resp)
		}
		return result.Commits, nil
	})
	if err != nil {
		return nil, err
	}

	commits := make([]wrapped.Commit, 0, len(results))
	for _, result := range results {
		commit := wrapped.Commit{
			SHA:     result.GetSHA(),
			Repo:    result.GetRepository().GetFullName(),
			Message: result.GetCommit().GetMessage(),
		}
		if date := result.GetCommit().GetCommitter().GetDate(); !date.Time.IsZero() {
			commit.When = date.Time
		} else {
			commit.When = result.GetCommit().GetAuthor().GetDate().Time
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

func (c *Client) MergedPullRequests(ctx context.Context, year int) (int, error) {
	query := fmt.Sprintf("author:%s type:pr is:merged merged:%s", c.username, yearRange(year))
	return c.searchCount(ctx, "search merged PRs", query)
}

func (c *Client) ClosedIssues(ctx context.Context, year int) (int, error) {
	query := fmt.Sprintf("author:%s type:issue is:closed closed:%s", c.username, yearRange(year))
	return c.searchCount(ctx, "search closed issues", query)
}

// searchCount reads the search endpoint's total-count field, which is
// authoritative and far cheaper than materializing every item.
func (c *Client) searchCount(ctx context.Context, op, query string) (int, error) {
	if err := c.throttle.wait(ctx); err != nil {
		return 0, err
	}
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, resp, err := c.gh.Search.Issues(ctx, query, opts)
	c.throttle.observe(resp)
	if err != nil {
		return 0, translateError(op, err, resp)
	}
	return result.GetTotal(), nil
}

func (c *Client) Repositories(ctx context.Context) ([]wrapped.Repository, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Visibility:  "all",
		Affiliation: "owner,collaborator,organization_member",
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: defaultPageSize},
	}

	var repos []wrapped.Repository
	for {
		if err := c.throttle.wait(ctx); err != nil {
			return repos, nil
		}
		page, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
		c.throttle.observe(resp)
		if err != nil {
			translated := translateError("list repositories", err, resp)
			if wrapped.IsRateLimited(translated) {
				return repos, translated
			}
			return repos, nil
		}

		for _, repo := range page {
			repos = append(repos, convertRepository(repo))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

// LanguageBytes fans out one languages request per non-fork repository,
// bounded by maxWorkers, and merges the byte counts. Per-repo failures
// are dropped; the merged partial map is still useful.
func (c *Client) LanguageBytes(ctx context.Context, repos []wrapped.Repository) (map[string]int64, error) {
	languages := make(map[string]int64)
	var mu sync.Mutex
	var wg sync.WaitGroup

	sem := make(chan struct{}, c.maxWorkers)
	for _, repo := range repos {
		if repo.Fork || repo.Owner == "" || repo.Name == "" {
			continue
		}

		wg.Add(1)
		go func(owner, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := c.throttle.wait(ctx); err != nil {
				return
			}
			langs, resp, err := c.gh.Repositories.ListLanguages(ctx, owner, name)
			c.throttle.observe(resp)
			if err != nil {
				return
			}

			mu.Lock()
			for lang, bytes := range langs {
				languages[lang] += int64(bytes)
			}
			mu.Unlock()
		}(repo.Owner, repo.Name)
	}

	wg.Wait()
	return languages, nil
}

// ReviewedLines reports review volume. The default is reviewed-PR count
// times an average diff size; exact mode sums real diff stats over a
// bounded sample of the reviewed PRs instead, trading latency for
// accuracy.
func (c *Client) ReviewedLines(ctx context.Context, year int) (int, error) {
	query := fmt.Sprintf("reviewed-by:%s type:pr updated:%s", c.username, yearRange(year))

	if !c.exact {
		count, err := c.searchCount(ctx, "search reviewed PRs", query)
		if err != nil {
			return 0, err
		}
		return count * estimatedLinesPerReview, nil
	}

	issues, err := c.searchIssuesPage(ctx, "search reviewed PRs", query, exactReviewSample)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, issue := range issues {
		owner, repo := splitRepoURL(issue.GetRepositoryURL())
		if owner == "" {
			continue
		}
		if err := c.throttle.wait(ctx); err != nil {
			break
		}
		pr, resp, prErr := c.gh.PullRequests.Get(ctx, owner, repo, issue.GetNumber())
		c.throttle.observe(resp)
		if prErr != nil {
			continue
		}
		total += pr.GetAdditions() + pr.GetDeletions()
	}
	return total, nil
}

func (c *Client) Followers(ctx context.Context) (int, error) {
	// The profile endpoint carries the current total; listing follower
	// pages would cost more and say no more. Historical "gained" counts
	// are not derivable from the API at all.
	profile, err := c.Profile(ctx)
	if err != nil {
		return 0, err
	}
	return profile.Followers, nil
}

// Collaborators merges two signals: authors of PRs the user reviewed,
// and PR authors across a bounded sample of the user's own repositories.
// Each sighting counts as one interaction regardless of signal type.
func (c *Client) Collaborators(ctx context.Context, year int) ([]wrapped.Collaborator, error) {
	counts := make(map[string]int)
	avatars := make(map[string]string)
	var order []string

	record := func(user *github.User) {
		login := user.GetLogin()
		if login == "" || strings.EqualFold(login, c.username) {
			return
		}
		if _, seen := counts[login]; !seen {
			order = append(order, login)
			avatars[login] = user.GetAvatarURL()
		}
		counts[login]++
	}

	query := fmt.Sprintf("reviewed-by:%s type:pr updated:%s", c.username, yearRange(year))
	issues, err := c.searchIssuesPage(ctx, "search reviewed PRs", query, defaultPageSize)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		record(issue.GetUser())
	}

	repos, err := c.ownedRepoSample(ctx)
	if err != nil {
		return collaboratorList(order, counts, avatars), err
	}
	for _, repo := range repos {
		if err := c.throttle.wait(ctx); err != nil {
			break
		}
		opts := &github.PullRequestListOptions{
			State:       "all",
			ListOptions: github.ListOptions{PerPage: 50},
		}
		prs, resp, listErr := c.gh.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
		c.throttle.observe(resp)
		if listErr != nil {
			continue
		}
		for _, pr := range prs {
			if pr.GetCreatedAt().Year() != year {
				continue
			}
			record(pr.GetUser())
		}
	}

	return collaboratorList(order, counts, avatars), nil
}

// Lines computes lines of code for the commit set. Default is the 50/20
// multiplier estimate; exact mode sums per-commit diff stats over a
// bounded sample, batched with an inter-batch pause so the whole run
// stays under the rate ceiling. Per-commit failures are tolerated.
func (c *Client) Lines(ctx context.Context, commits []wrapped.Commit) (wrapped.LineStats, error) {
	if !c.exact {
		return wrapped.EstimateLines(len(commits), wrapped.EstimatedAddedPerCommit, wrapped.EstimatedDeletedPerCommit), nil
	}

	sample := commits
	if len(sample) > exactCommitSample {
		sample = sample[:exactCommitSample]
	}

	var (
		mu        sync.Mutex
		added     int
		deleted   int
		succeeded int
	)

	for start := 0; start < len(sample); start += exactBatchSize {
		end := start + exactBatchSize
		if end > len(sample) {
			end = len(sample)
		}

		var wg sync.WaitGroup
		for _, commit := range sample[start:end] {
			owner, repo := splitFullName(commit.Repo)
			if owner == "" || commit.SHA == "" {
				continue
			}

			wg.Add(1)
			go func(owner, repo, sha string) {
				defer wg.Done()
				if err := c.throttle.wait(ctx); err != nil {
					return
				}
				rc, resp, err := c.gh.Repositories.GetCommit(ctx, owner, repo, sha, nil)
				c.throttle.observe(resp)
				if err != nil || rc.GetStats() == nil {
					return
				}
				mu.Lock()
				added += rc.GetStats().GetAdditions()
				deleted += rc.GetStats().GetDeletions()
				succeeded++
				mu.Unlock()
			}(owner, repo, commit.SHA)
		}
		wg.Wait()

		if end < len(sample) {
			select {
			case <-ctx.Done():
				return wrapped.LineStats{Added: added, Deleted: deleted, Net: added - deleted}, nil
			case <-time.After(exactBatchDelay):
			}
		}
	}

	if succeeded == 0 && len(commits) > 0 {
		return wrapped.EstimateLines(len(commits), wrapped.EstimatedAddedPerCommit, wrapped.EstimatedDeletedPerCommit), nil
	}
	return wrapped.LineStats{Added: added, Deleted: deleted, Net: added - deleted}, nil
}

func (c *Client) searchIssuesPage(ctx context.Context, op, query string, perPage int) ([]*github.Issue, error) {
	if err := c.throttle.wait(ctx); err != nil {
		return nil, err
	}
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	result, resp, err := c.gh.Search.Issues(ctx, query, opts)
	c.throttle.observe(resp)
	if err != nil {
		return nil, translateError(op, err, resp)
	}
	return result.Issues, nil
}

func (c *Client) ownedRepoSample(ctx context.Context) ([]wrapped.Repository, error) {
	if err := c.throttle.wait(ctx); err != nil {
		return nil, nil
	}
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Visibility:  "all",
		Affiliation: "owner",
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: collaboratorRepoSample},
	}
	page, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
	c.throttle.observe(resp)
	if err != nil {
		translated := translateError("list owned repositories", err, resp)
		if wrapped.IsRateLimited(translated) {
			return nil, translated
		}
		return nil, nil
	}

	repos := make([]wrapped.Repository, 0, len(page))
	for _, repo := range page {
		repos = append(repos, convertRepository(repo))
	}
	return repos, nil
}

func convertRepository(repo *github.Repository) wrapped.Repository {
	return wrapped.Repository{
		Name:     repo.GetName(),
		FullName: repo.GetFullName(),
		Owner:    repo.GetOwner().GetLogin(),
		Language: repo.GetLanguage(),
		Stars:    repo.GetStargazersCount(),
		Fork:     repo.GetFork(),
	}
}

func collaboratorList(order []string, counts map[string]int, avatars map[string]string) []wrapped.Collaborator {
	collaborators := make([]wrapped.Collaborator, 0, len(order))
	for _, login := range order {
		collaborators = append(collaborators, wrapped.Collaborator{
			Username:     login,
			AvatarURL:    avatars[login],
			Interactions: counts[login],
		})
	}
	return collaborators
}

func yearRange(year int) string {
	return fmt.Sprintf("%d-01-01..%d-12-31", year, year)
}

// splitRepoURL extracts owner and repo from an API repository URL like
// https://api.github.com/repos/octocat/hello-world.
func splitRepoURL(url string) (owner, repo string) {
	const marker = "/repos/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", ""
	}
	return splitFullName(url[idx+len(marker):])
}

func splitFullName(fullName string) (owner, repo string) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}
