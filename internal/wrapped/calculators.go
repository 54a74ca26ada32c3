package wrapped

import (
	"sort"
	"strings"
	"time"
)

const (
	topToolCount         = 3
	topLanguageCount     = 5
	topCollaboratorCount = 5
)

// EstimateLines derives line counts from a commit total using fixed
// per-commit multipliers. Inexact on purpose: the commit-diff endpoint is
// too expensive to hit for every commit, so sources without a diff-stat
// budget fall back to this.
func EstimateLines(commitCount, addedPerCommit, deletedPerCommit int) LineStats {
	if commitCount < 0 {
		commitCount = 0
	}
	added := commitCount * addedPerCommit
	deleted := commitCount * deletedPerCommit
	return LineStats{Added: added, Deleted: deleted, Net: added - deleted}
}

// aiToolPatterns maps tool names to case-insensitive substrings matched
// against commit messages. Slice order fixes the tie-break when counts
// are equal.
var aiToolPatterns = []struct {
	Name     string
	Patterns []string
}{
	{"GitHub Copilot", []string{"copilot", "co-pilot"}},
	{"ChatGPT", []string{"chatgpt", "gpt", "openai"}},
	{"Claude", []string{"claude", "anthropic"}},
	{"Cursor", []string{"cursor"}},
	{"Tabnine", []string{"tabnine"}},
	{"Codeium", []string{"codeium"}},
}

// DetectAITools scans commit messages for mentions of AI coding tools and
// returns the top three by mention count, descending.
func DetectAITools(commits []Commit) []ToolUsage {
	counts := make(map[string]int)
	for _, commit := range commits {
		message := strings.ToLower(commit.Message)
		if message == "" {
			continue
		}
		for _, tool := range aiToolPatterns {
			for _, pattern := range tool.Patterns {
				if strings.Contains(message, pattern) {
					counts[tool.Name]++
					break
				}
			}
		}
	}

	var tools []ToolUsage
	for _, tool := range aiToolPatterns {
		if count := counts[tool.Name]; count > 0 {
			tools = append(tools, ToolUsage{Name: tool.Name, Count: count})
		}
	}

	sort.SliceStable(tools, func(i, j int) bool {
		return tools[i].Count > tools[j].Count
	})

	if len(tools) > topToolCount {
		tools = tools[:topToolCount]
	}
	return tools
}

// FavoriteRepo picks the repository with the most commits. Ties are broken
// by first appearance in the commit list. Stars are joined from the repo
// list when the full name matches, else 0. Returns nil when no commit is
// attributable to a repository.
func FavoriteRepo(commits []Commit, repos []Repository) *RepoActivity {
	counts := make(map[string]int)
	var order []string
	for _, commit := range commits {
		if commit.Repo == "" {
			continue
		}
		if _, seen := counts[commit.Repo]; !seen {
			order = append(order, commit.Repo)
		}
		counts[commit.Repo]++
	}
	if len(order) == 0 {
		return nil
	}

	best := order[0]
	for _, name := range order[1:] {
		if counts[name] > counts[best] {
			best = name
		}
	}

	stars := 0
	for _, repo := range repos {
		if repo.FullName == best {
			stars = repo.Stars
			break
		}
	}

	return &RepoActivity{Name: best, Stars: stars, Commits: counts[best]}
}

// TopLanguagesFromBytes ranks languages by byte share. An empty or
// zero-total map yields an empty list, never a division by zero.
func TopLanguagesFromBytes(bytes map[string]int64) []LanguageShare {
	names := make([]string, 0, len(bytes))
	var total int64
	for name, count := range bytes {
		if count <= 0 {
			continue
		}
		names = append(names, name)
		total += count
	}
	if total == 0 {
		return nil
	}

	sort.Slice(names, func(i, j int) bool {
		if bytes[names[i]] != bytes[names[j]] {
			return bytes[names[i]] > bytes[names[j]]
		}
		return names[i] < names[j]
	})

	return languageShares(names, func(name string) int64 { return bytes[name] }, total)
}

// TopLanguagesFromRepos ranks languages by how many repositories name them
// as primary language. Cheaper fallback for sources without byte counts.
func TopLanguagesFromRepos(repos []Repository) []LanguageShare {
	counts := make(map[string]int64)
	var total int64
	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		counts[repo.Language]++
		total++
	}
	if total == 0 {
		return nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	return languageShares(names, func(name string) int64 { return counts[name] }, total)
}

func languageShares(ranked []string, count func(string) int64, total int64) []LanguageShare {
	if len(ranked) > topLanguageCount {
		ranked = ranked[:topLanguageCount]
	}
	shares := make([]LanguageShare, 0, len(ranked))
	for _, name := range ranked {
		pct := int((count(name)*100 + total/2) / total)
		shares = append(shares, LanguageShare{Name: name, Percentage: pct})
	}
	return shares
}

// RankCollaborators sorts collaborators by interaction count descending
// and truncates to the top five. Sorting happens before truncation.
func RankCollaborators(collaborators []Collaborator) []Collaborator {
	ranked := make([]Collaborator, len(collaborators))
	copy(ranked, collaborators)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Interactions > ranked[j].Interactions
	})
	if len(ranked) > topCollaboratorCount {
		ranked = ranked[:topCollaboratorCount]
	}
	return ranked
}

// Productivity holds the commit-timing analysis: streak plus the modal
// weekday, hour and month.
type Productivity struct {
	StreakDays int
	Day        string
	Hour       int
	Month      string
}

// Defaults mirror the original product's guest-mode fallbacks for users
// with no observable activity.
const (
	defaultProductiveDay   = "Monday"
	defaultProductiveHour  = 9
	defaultProductiveMonth = "January"
)

// AnalyzeProductivity buckets timestamps by weekday, hour and month and
// returns the mode of each, plus the longest run of consecutive calendar
// days with activity. Timestamps are taken as provided by the source; no
// timezone normalization is applied.
func AnalyzeProductivity(times []time.Time) Productivity {
	if len(times) == 0 {
		return Productivity{
			Day:   defaultProductiveDay,
			Hour:  defaultProductiveHour,
			Month: defaultProductiveMonth,
		}
	}

	dayCounts := make(map[time.Weekday]int)
	hourCounts := make(map[int]int)
	monthCounts := make(map[time.Month]int)
	for _, t := range times {
		dayCounts[t.Weekday()]++
		hourCounts[t.Hour()]++
		monthCounts[t.Month()]++
	}

	bestDay := time.Sunday
	for day := time.Sunday; day <= time.Saturday; day++ {
		if dayCounts[day] > dayCounts[bestDay] {
			bestDay = day
		}
	}

	bestHour := 0
	for hour := 1; hour < 24; hour++ {
		if hourCounts[hour] > hourCounts[bestHour] {
			bestHour = hour
		}
	}

	bestMonth := time.January
	for month := time.January; month <= time.December; month++ {
		if monthCounts[month] > monthCounts[bestMonth] {
			bestMonth = month
		}
	}

	return Productivity{
		StreakDays: LongestStreak(times),
		Day:        bestDay.String(),
		Hour:       bestHour,
		Month:      bestMonth.String(),
	}
}

// LongestStreak returns the longest run of consecutive calendar days with
// at least one timestamp. Duplicate days collapse before the walk.
func LongestStreak(times []time.Time) int {
	if len(times) == 0 {
		return 0
	}

	daySet := make(map[string]time.Time)
	for _, t := range times {
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		daySet[day.Format("2006-01-02")] = day
	}

	days := make([]time.Time, 0, len(daySet))
	for _, day := range daySet {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest := 1
	current := 1
	for i := 1; i < len(days); i++ {
		gap := int(days[i].Sub(days[i-1]).Hours() / 24)
		if gap == 1 {
			current++
			continue
		}
		if current > longest {
			longest = current
		}
		current = 1
	}
	if current > longest {
		longest = current
	}
	return longest
}
