package wrapped

// Rarity grades how hard a badge is to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Badge is an achievement unlocked by a snapshot. Unlike nicknames,
// badges are independent predicates: a snapshot may earn zero, one, or
// many at once.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
	Rarity      Rarity `json:"rarity"`
}

type badgeRule struct {
	badge  Badge
	earned func(*Snapshot) bool
}

var badgeRules = []badgeRule{
	{
		badge:  Badge{"code-machine", "Code Machine", "Made 500+ commits in a year", IconCog, RarityEpic},
		earned: func(s *Snapshot) bool { return s.TotalCommits >= 500 },
	},
	{
		badge:  Badge{"commit-champion", "Commit Champion", "Made 1000+ commits in a year", IconTrophy, RarityLegendary},
		earned: func(s *Snapshot) bool { return s.TotalCommits >= 1000 },
	},
	{
		badge:  Badge{"pr-master", "PR Master", "Merged 50+ pull requests", IconBranch, RarityRare},
		earned: func(s *Snapshot) bool { return s.TotalPRsMerged >= 50 },
	},
	{
		badge:  Badge{"pr-legend", "PR Legend", "Merged 100+ pull requests", IconCrown, RarityLegendary},
		earned: func(s *Snapshot) bool { return s.TotalPRsMerged >= 100 },
	},
	{
		badge:  Badge{"bug-slayer", "Bug Slayer", "Resolved 30+ issues", IconBug, RarityRare},
		earned: func(s *Snapshot) bool { return s.TotalIssuesResolved >= 30 },
	},
	{
		badge:  Badge{"bug-terminator", "Bug Terminator", "Resolved 100+ issues", IconFire, RarityEpic},
		earned: func(s *Snapshot) bool { return s.TotalIssuesResolved >= 100 },
	},
	{
		badge:  Badge{"line-warrior", "Line Warrior", "Wrote 10k+ lines of code", IconPencil, RarityRare},
		earned: func(s *Snapshot) bool { return s.Lines.Added >= 10000 },
	},
	{
		badge:  Badge{"code-titan", "Code Titan", "Wrote 50k+ lines of code", IconRocket, RarityEpic},
		earned: func(s *Snapshot) bool { return s.Lines.Added >= 50000 },
	},
	{
		badge:  Badge{"delete-master", "Delete Master", "Deleted more code than you wrote", IconTrash, RarityRare},
		earned: func(s *Snapshot) bool { return s.Lines.Deleted > s.Lines.Added },
	},
	{
		badge:  Badge{"review-king", "Review King", "Reviewed 5k+ lines of code", IconEye, RarityRare},
		earned: func(s *Snapshot) bool { return s.ReviewedLines >= 5000 },
	},
	{
		badge:  Badge{"review-legend", "Review Legend", "Reviewed 20k+ lines of code", IconSearch, RarityEpic},
		earned: func(s *Snapshot) bool { return s.ReviewedLines >= 20000 },
	},
	{
		badge:  Badge{"streak-master", "Streak Master", "Maintained a 30+ day commit streak", IconFire, RarityEpic},
		earned: func(s *Snapshot) bool { return s.StreakDays >= 30 },
	},
	{
		badge:  Badge{"streak-legend", "Streak Legend", "Maintained a 100+ day commit streak", IconBolt, RarityLegendary},
		earned: func(s *Snapshot) bool { return s.StreakDays >= 100 },
	},
	{
		badge:  Badge{"night-owl", "Night Owl", "Most productive between 10 PM and 4 AM", IconMoon, RarityCommon},
		earned: func(s *Snapshot) bool { return s.MostProductiveHour >= 22 || s.MostProductiveHour <= 4 },
	},
	{
		badge:  Badge{"early-bird", "Early Bird", "Most productive between 5 AM and 9 AM", IconSun, RarityCommon},
		earned: func(s *Snapshot) bool { return s.MostProductiveHour >= 5 && s.MostProductiveHour <= 9 },
	},
	{
		badge:  Badge{"weekend-warrior", "Weekend Warrior", "Most productive on weekends", IconCalendar, RarityCommon},
		earned: func(s *Snapshot) bool { return s.MostProductiveDay == "Saturday" || s.MostProductiveDay == "Sunday" },
	},
	{
		badge:  Badge{"ai-enthusiast", "AI Enthusiast", "Used AI tools in commits", IconRobot, RarityCommon},
		earned: func(s *Snapshot) bool { return len(s.AITools) > 0 },
	},
	{
		badge: Badge{"ai-power-user", "AI Power User", "Used multiple AI tools extensively", IconRocket, RarityRare},
		earned: func(s *Snapshot) bool {
			if len(s.AITools) < 2 {
				return false
			}
			total := 0
			for _, tool := range s.AITools {
				total += tool.Count
			}
			return total >= 50
		},
	},
	{
		badge:  Badge{"polyglot", "Polyglot", "Coded in 5+ programming languages", IconGlobe, RarityRare},
		earned: func(s *Snapshot) bool { return len(s.TopLanguages) >= 5 },
	},
	{
		badge:  Badge{"star-collector", "Star Collector", "Favorite repo has 10+ stars", IconStar, RarityCommon},
		earned: func(s *Snapshot) bool { return s.FavoriteRepo != nil && s.FavoriteRepo.Stars >= 10 },
	},
	{
		badge:  Badge{"popular-project", "Popular Project", "Favorite repo has 100+ stars", IconAward, RarityEpic},
		earned: func(s *Snapshot) bool { return s.FavoriteRepo != nil && s.FavoriteRepo.Stars >= 100 },
	},
	{
		badge:  Badge{"consistent-contributor", "Consistent Contributor", "Made at least 1 commit", IconCheck, RarityCommon},
		earned: func(s *Snapshot) bool { return s.TotalCommits >= 1 },
	},
}

// DeriveBadges returns every badge the snapshot satisfies, in the fixed
// table order.
func DeriveBadges(s *Snapshot) []Badge {
	var earned []Badge
	for _, rule := range badgeRules {
		if rule.earned(s) {
			earned = append(earned, rule.badge)
		}
	}
	return earned
}

// BadgesByRarity groups earned badges by rarity grade.
func BadgesByRarity(badges []Badge) map[Rarity][]Badge {
	grouped := make(map[Rarity][]Badge)
	for _, badge := range badges {
		grouped[badge.Rarity] = append(grouped[badge.Rarity], badge)
	}
	return grouped
}

// BadgeCount summarizes how many badges of each rarity a snapshot earns.
type BadgeCount struct {
	Total     int
	Legendary int
	Epic      int
	Rare      int
	Common    int
}

// CountBadges tallies earned badges per rarity.
func CountBadges(s *Snapshot) BadgeCount {
	grouped := BadgesByRarity(DeriveBadges(s))
	return BadgeCount{
		Total:     len(grouped[RarityLegendary]) + len(grouped[RarityEpic]) + len(grouped[RarityRare]) + len(grouped[RarityCommon]),
		Legendary: len(grouped[RarityLegendary]),
		Epic:      len(grouped[RarityEpic]),
		Rare:      len(grouped[RarityRare]),
		Common:    len(grouped[RarityCommon]),
	}
}
