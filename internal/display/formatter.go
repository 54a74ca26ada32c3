package display

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github-wrapped/internal/wrapped"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

type Formatter struct {
	format string
}

func NewFormatter(format string) *Formatter {
	return &Formatter{format: format}
}

// Report bundles everything derived from one orchestration run.
type Report struct {
	Snapshot *wrapped.Snapshot `json:"snapshot"`
	Nickname wrapped.Nickname  `json:"nickname"`
	Badges   []wrapped.Badge   `json:"badges"`
	FunFact  string            `json:"funFact"`
}

func BuildReport(snapshot *wrapped.Snapshot) *Report {
	return &Report{
		Snapshot: snapshot,
		Nickname: wrapped.DeriveNickname(snapshot),
		Badges:   wrapped.DeriveBadges(snapshot),
		FunFact:  wrapped.FunFact(snapshot),
	}
}

func (f *Formatter) Display(report *Report) error {
	switch f.format {
	case "json":
		return f.displayJSON(report)
	case "table":
		return f.displayTable(report)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

func (f *Formatter) displayJSON(report *Report) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (f *Formatter) displayTable(report *Report) error {
	stats := report.Snapshot

	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	blue := color.New(color.FgBlue)
	magenta := color.New(color.FgMagenta, color.Bold)

	cyan.Println("\n" + strings.Repeat("=", 80))
	cyan.Printf("  %d Wrapped for @%s\n", stats.Year, stats.Username)
	cyan.Println(strings.Repeat("=", 80))

	fmt.Println()
	magenta.Printf("  ✨ %s — %s\n", report.Nickname.Title, report.Nickname.Description)
	blue.Printf("  %s\n", report.FunFact)

	fmt.Println()
	green.Println("👤 PROFILE")
	fmt.Println(strings.Repeat("-", 80))

	table := newTable()
	table.SetHeader([]string{"Field", "Value"})
	if stats.Profile.Name != "" {
		table.Append([]string{"Name", stats.Profile.Name})
	}
	table.Append([]string{"Username", stats.Username})
	if stats.Profile.Bio != "" {
		table.Append([]string{"Bio", truncate(stats.Profile.Bio, 60)})
	}
	if stats.Profile.Company != "" {
		table.Append([]string{"Company", stats.Profile.Company})
	}
	if stats.Profile.Location != "" {
		table.Append([]string{"Location", stats.Profile.Location})
	}
	if !stats.Profile.CreatedAt.IsZero() {
		table.Append([]string{"Joined", stats.Profile.CreatedAt.Format("January 2, 2006")})
	}
	table.Append([]string{"Followers", fmt.Sprintf("%d", stats.Followers)})
	table.Append([]string{"Following", fmt.Sprintf("%d", stats.Profile.Following)})
	table.Append([]string{"Public Repositories", fmt.Sprintf("%d", stats.Profile.PublicRepos)})
	table.Render()

	fmt.Println()
	green.Println("📊 YEAR IN NUMBERS")
	fmt.Println(strings.Repeat("-", 80))

	table = newTable()
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Commits", fmt.Sprintf("%d", stats.TotalCommits)})
	table.Append([]string{"Pull Requests Merged", fmt.Sprintf("%d", stats.TotalPRsMerged)})
	table.Append([]string{"Issues Resolved", fmt.Sprintf("%d", stats.TotalIssuesResolved)})
	table.Append([]string{"Lines Added", fmt.Sprintf("%d", stats.Lines.Added)})
	table.Append([]string{"Lines Deleted", fmt.Sprintf("%d", stats.Lines.Deleted)})
	table.Append([]string{"Net Lines", fmt.Sprintf("%+d", stats.Lines.Net)})
	table.Append([]string{"Lines Reviewed", fmt.Sprintf("%d", stats.ReviewedLines)})
	table.Render()

	if stats.FavoriteRepo != nil {
		fmt.Println()
		green.Println("❤️ FAVORITE REPOSITORY")
		fmt.Println(strings.Repeat("-", 80))

		table = newTable()
		table.SetHeader([]string{"Repository", "Commits", "Stars"})
		table.Append([]string{
			stats.FavoriteRepo.Name,
			fmt.Sprintf("%d", stats.FavoriteRepo.Commits),
			fmt.Sprintf("%d ⭐", stats.FavoriteRepo.Stars),
		})
		table.Render()
	}

	if len(stats.TopLanguages) > 0 {
		fmt.Println()
		green.Println("💻 TOP LANGUAGES")
		fmt.Println(strings.Repeat("-", 80))

		table = newTable()
		table.SetHeader([]string{"Language", "Share"})
		for _, lang := range stats.TopLanguages {
			bar := createBar(lang.Percentage, 30)
			table.Append([]string{lang.Name, fmt.Sprintf("%d%% %s", lang.Percentage, bar)})
		}
		table.Render()
	}

	if len(stats.AITools) > 0 {
		fmt.Println()
		green.Println("🤖 AI TOOLS IN COMMITS")
		fmt.Println(strings.Repeat("-", 80))

		table = newTable()
		table.SetHeader([]string{"Tool", "Mentions"})
		for _, tool := range stats.AITools {
			table.Append([]string{tool.Name, fmt.Sprintf("%d", tool.Count)})
		}
		table.Render()
	}

	fmt.Println()
	green.Println("🔥 PRODUCTIVITY")
	fmt.Println(strings.Repeat("-", 80))

	table = newTable()
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Longest Streak", fmt.Sprintf("%d days", stats.StreakDays)})
	table.Append([]string{"Most Productive Day", stats.MostProductiveDay})
	table.Append([]string{"Most Productive Hour", formatHour(stats.MostProductiveHour)})
	table.Append([]string{"Most Productive Month", stats.MostProductiveMonth})
	table.Render()

	if len(stats.TopCollaborators) > 0 {
		fmt.Println()
		green.Println("🤝 TOP COLLABORATORS")
		fmt.Println(strings.Repeat("-", 80))

		table = newTable()
		table.SetHeader([]string{"User", "Interactions"})
		for _, collab := range stats.TopCollaborators {
			table.Append([]string{collab.Username, fmt.Sprintf("%d", collab.Interactions)})
		}
		table.Render()
	}

	if len(report.Badges) > 0 {
		fmt.Println()
		green.Println("🏅 BADGES UNLOCKED")
		fmt.Println(strings.Repeat("-", 80))

		table = newTable()
		table.SetHeader([]string{"Badge", "Rarity", "Description"})
		for _, badge := range report.Badges {
			table.Append([]string{badge.Name, string(badge.Rarity), badge.Description})
		}
		table.Render()
	}

	fmt.Println()
	blue.Println(strings.Repeat("-", 80))
	blue.Printf("Generated at: %s\n", time.Now().Format("2006-01-02 15:04:05 MST"))
	blue.Println(strings.Repeat("=", 80))
	fmt.Println()

	return nil
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func formatHour(hour int) string {
	if hour == 0 {
		return "12:00 AM"
	} else if hour < 12 {
		return fmt.Sprintf("%d:00 AM", hour)
	} else if hour == 12 {
		return "12:00 PM"
	} else {
		return fmt.Sprintf("%d:00 PM", hour-12)
	}
}

func createBar(percentage, width int) string {
	filled := percentage * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func DisplaySuccess(message string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", message)
}

func DisplayWarning(message string) {
	yellow := color.New(color.FgYellow)
	yellow.Printf("⚠ %s\n", message)
}

func DisplayError(message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Printf("✗ %s\n", message)
}
