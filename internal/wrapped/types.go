package wrapped

import (
	"time"
)

// Snapshot is the complete year-in-review result for one (username, year)
// pair. It is assembled once by the orchestrator and never mutated after
// construction; a request for a different year produces a new Snapshot.
type Snapshot struct {
	Username string `json:"username"`
	Year     int    `json:"year"`

	TotalCommits        int       `json:"totalCommits"`
	TotalPRsMerged      int       `json:"totalPRsMerged"`
	TotalIssuesResolved int       `json:"totalIssuesResolved"`
	Lines               LineStats `json:"linesOfCode"`
	ReviewedLines       int       `json:"reviewedLines"`
	Followers           int       `json:"followers"`

	// FavoriteRepo is nil when no commit in the observed window is
	// attributable to any repository.
	FavoriteRepo *RepoActivity `json:"favoriteRepository"`

	AITools      []ToolUsage     `json:"aiTools"`      // top 3, descending by count
	TopLanguages []LanguageShare `json:"topLanguages"` // top 5, descending by share

	StreakDays          int    `json:"streakDays"`
	MostProductiveDay   string `json:"mostProductiveDay"`
	MostProductiveHour  int    `json:"mostProductiveHour"`
	MostProductiveMonth string `json:"mostProductiveMonth"`

	TopCollaborators []Collaborator `json:"topCollaborators"` // top 5, descending by interactions

	Profile Profile `json:"profile"`
}

// LineStats tracks lines of code changed. Net is always Added - Deleted
// and may be negative; Added and Deleted never are.
type LineStats struct {
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
	Net     int `json:"net"`
}

// RepoActivity is the repository that received the most commits in the
// observed window.
type RepoActivity struct {
	Name    string `json:"name"`
	Stars   int    `json:"stars"`
	Commits int    `json:"commits"`
}

// ToolUsage records how often an AI coding tool was mentioned in commit
// messages.
type ToolUsage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LanguageShare is a language's integer percentage of the user's total
// language footprint. Shares need not sum to exactly 100 after rounding.
type LanguageShare struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// Collaborator is another user the subject interacted with, counted by
// interaction frequency.
type Collaborator struct {
	Username     string `json:"username"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	Interactions int    `json:"interactions"`
}

// Profile is the subject's public profile, fetched once and attached to
// the snapshot verbatim.
type Profile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Company     string    `json:"company,omitempty"`
	Location    string    `json:"location,omitempty"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"publicRepos"`
	PublicGists int       `json:"publicGists"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Commit is a single commit attributed to the subject. In guest mode
// commits are synthesized from push-event payloads, so SHA and Message
// may be empty.
type Commit struct {
	SHA     string    `json:"sha"`
	Repo    string    `json:"repo"` // full name, e.g. "octocat/hello-world"
	Message string    `json:"message"`
	When    time.Time `json:"when"`
}

// Repository is a repository the subject owns or collaborates on.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Owner    string `json:"owner"`
	Language string `json:"language"`
	Stars    int    `json:"stars"`
	Fork     bool   `json:"fork"`
}
