package github

import (
	"context"
	"strings"
	"sync"

	"github.com/google/go-github/v81/github"

	"github-wrapped/internal/wrapped"
)

const (
	// eventFeedCap is the upstream bound on the public event feed: only
	// the ~300 most recent events are retrievable.
	eventFeedCap = 300

	// Guest-mode estimation multipliers. Lower than the authenticated
	// ones since push events under-report commit context.
	guestAddedPerCommit    = 30
	guestDeletedPerCommit  = 15
	guestReviewedPerCommit = 150
)

// PublicClient implements wrapped.Source for guest mode: no credential,
// public endpoints only, and every statistic derived from the capped
// public event feed instead of dedicated search endpoints. Materially
// lower fidelity than the authenticated client, by upstream design.
type PublicClient struct {
	gh       *github.Client
	username string
	throttle *throttle

	// The event feed is fetched once per client and reused by every
	// collector that derives from it.
	eventsOnce sync.Once
	events     []*github.Event
	eventsErr  error
}

// NewPublicClient builds an unauthenticated client for the given user.
func NewPublicClient(username string) *PublicClient {
	return &PublicClient{
		gh:       github.NewClient(nil),
		username: username,
		throttle: newThrottle(guestRate),
	}
}

func (c *PublicClient) Profile(ctx context.Context) (*wrapped.Profile, error) {
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

// publicEvents fetches the subject's public event feed once. An empty
// feed is a normal outcome for inactive or very private users.
func (c *PublicClient) publicEvents(ctx context.Context) ([]*github.Event, error) {
	c.eventsOnce.Do(func() {
		c.events, c.eventsErr = fetchAllPages(ctx, eventFeedCap, func(ctx context.Context, page, perPage int) ([]*github.Event, error) {
			if err := c.throttle.wait(ctx); err != nil {
				return nil, err
			}
			opts := &github.ListOptions{PerPage: perPage, Page: page}
			events, resp, err := c.gh.Activity.ListEventsPerformedByUser(ctx, c.username, true, opts)
			c.throttle.observe(resp)
			if err != nil {
				return nil, translateError("list public events", err, resp)
			}
			return events, nil
		})
	})
	return c.events, c.eventsErr
}

func (c *PublicClient) yearEvents(ctx context.Context, year int) ([]*github.Event, error) {
	events, err := c.publicEvents(ctx)
	if err != nil {
		return nil, err
	}
	var filtered []*github.Event
	for _, event := range events {
		if event.GetCreatedAt().Year() == year {
			filtered = append(filtered, event)
		}
	}
	return filtered, nil
}

// Commits synthesizes commit records from push-event payloads. Payloads
// carry at most the head commits of each push, so the count is a floor,
// not an exact total.
func (c *PublicClient) Commits(ctx context.Context, year int) ([]wrapped.Commit, error) {
	events, err := c.yearEvents(ctx, year)
	if err != nil {
		return nil, err
	}

	var commits []wrapped.Commit
	for _, event := range events {
		if event.GetType() != "PushEvent" {
			continue
		}
		payload, err := event.ParsePayload()
		if err != nil {
			continue
		}
		push, ok := payload.(*github.PushEvent)
		if !ok {
			continue
		}

		when := event.GetCreatedAt().Time
		repo := event.GetRepo().GetName()
		if len(push.Commits) == 0 {
			// A push with an empty payload still represents at least one
			// commit.
			commits = append(commits, wrapped.Commit{Repo: repo, When: when})
			continue
		}
		for _, pc := range push.Commits {
			commits = append(commits, wrapped.Commit{
				SHA:     pc.GetSHA(),
				Repo:    repo,
				Message: pc.GetMessage(),
				When:    when,
			})
		}
	}
	return commits, nil
}

func (c *PublicClient) MergedPullRequests(ctx context.Context, year int) (int, error) {
	return c.countEvents(ctx, year, "PullRequestEvent")
}

func (c *PublicClient) ClosedIssues(ctx context.Context, year int) (int, error) {
	return c.countEvents(ctx, year, "IssuesEvent")
}

// countEvents counts opened/closed actions of one event type. The feed
// has no merged-state detail, so opened and closed both count; this is
// the best approximation the public surface allows.
func (c *PublicClient) countEvents(ctx context.Context, year int, eventType string) (int, error) {
	events, err := c.yearEvents(ctx, year)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, event := range events {
		if event.GetType() != eventType {
			continue
		}
		if action := eventAction(event); action == "opened" || action == "closed" {
			count++
		}
	}
	return count, nil
}

func eventAction(event *github.Event) string {
	payload, err := event.ParsePayload()
	if err != nil {
		return ""
	}
	switch p := payload.(type) {
	case *github.PullRequestEvent:
		return p.GetAction()
	case *github.IssuesEvent:
		return p.GetAction()
	default:
		return ""
	}
}

func (c *PublicClient) Repositories(ctx context.Context) ([]wrapped.Repository, error) {
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: defaultPageSize},
	}

	var repos []wrapped.Repository
	for {
		if err := c.throttle.wait(ctx); err != nil {
			return repos, nil
		}
		page, resp, err := c.gh.Repositories.ListByUser(ctx, c.username, opts)
		c.throttle.observe(resp)
		if err != nil {
			translated := translateError("list public repositories", err, resp)
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

// LanguageBytes is unavailable without a token at acceptable request
// cost; guest mode falls back to per-repo primary-language counts.
func (c *PublicClient) LanguageBytes(ctx context.Context, repos []wrapped.Repository) (map[string]int64, error) {
	return nil, nil
}

// ReviewedLines estimates review volume from commit activity; the public
// feed exposes no review events worth counting.
func (c *PublicClient) ReviewedLines(ctx context.Context, year int) (int, error) {
	commits, err := c.Commits(ctx, year)
	if err != nil {
		return 0, err
	}
	return len(commits) * guestReviewedPerCommit, nil
}

func (c *PublicClient) Followers(ctx context.Context) (int, error) {
	profile, err := c.Profile(ctx)
	if err != nil {
		return 0, err
	}
	return profile.Followers, nil
}

// Collaborators counts activity on repositories the subject does not
// own: pushing to or opening PRs against another account's repo implies
// working with that account. A heuristic, but the only collaboration
// signal the public feed carries.
func (c *PublicClient) Collaborators(ctx context.Context, year int) ([]wrapped.Collaborator, error) {
	events, err := c.yearEvents(ctx, year)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, event := range events {
		owner, _ := splitFullName(event.GetRepo().GetName())
		if owner == "" || strings.EqualFold(owner, c.username) {
			continue
		}
		if _, seen := counts[owner]; !seen {
			order = append(order, owner)
		}
		counts[owner]++
	}

	collaborators := make([]wrapped.Collaborator, 0, len(order))
	for _, owner := range order {
		collaborators = append(collaborators, wrapped.Collaborator{
			Username:     owner,
			Interactions: counts[owner],
		})
	}
	return collaborators, nil
}

func (c *PublicClient) Lines(ctx context.Context, commits []wrapped.Commit) (wrapped.LineStats, error) {
	return wrapped.EstimateLines(len(commits), guestAddedPerCommit, guestDeletedPerCommit), nil
}
