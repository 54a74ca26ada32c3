package wrapped

import "fmt"

// Nickname is the single qualitative label derived from a snapshot.
type Nickname struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
}

type nicknameRule struct {
	matches  func(*Snapshot) bool
	nickname Nickname
}

// nicknameRules is evaluated in order; the first match wins. Inserting a
// new nickname means placing its rule at the right priority position, not
// just appending.
var nicknameRules = []nicknameRule{
	{
		matches: func(s *Snapshot) bool {
			return s.MostProductiveHour >= 22 || s.MostProductiveHour <= 4
		},
		nickname: Nickname{"Night Owl", "You code best when the world sleeps", IconMoon},
	},
	{
		matches: func(s *Snapshot) bool {
			return s.MostProductiveHour >= 5 && s.MostProductiveHour <= 8
		},
		nickname: Nickname{"Early Bird", "First one to push, last one to sleep", IconSun},
	},
	{
		matches:  func(s *Snapshot) bool { return s.TotalCommits >= 500 },
		nickname: Nickname{"Code Machine", "Your keyboard must be on fire", IconRobot},
	},
	{
		matches:  func(s *Snapshot) bool { return s.TotalPRsMerged >= 50 },
		nickname: Nickname{"PR Champion", "Merging PRs like a boss", IconTrophy},
	},
	{
		matches:  func(s *Snapshot) bool { return s.TotalIssuesResolved >= 30 },
		nickname: Nickname{"Bug Slayer", "No bug stands a chance against you", IconBug},
	},
	{
		matches:  func(s *Snapshot) bool { return s.Lines.Added >= 10000 },
		nickname: Nickname{"Line Warrior", "You write code like you breathe air", IconCode},
	},
	{
		matches:  func(s *Snapshot) bool { return s.Lines.Deleted > s.Lines.Added },
		nickname: Nickname{"Delete Master", "Less is more, and you prove it", IconTrash},
	},
	{
		matches:  func(s *Snapshot) bool { return s.ReviewedLines >= 5000 },
		nickname: Nickname{"Review King", "The guardian of code quality", IconEye},
	},
	{
		matches:  func(s *Snapshot) bool { return s.StreakDays >= 30 },
		nickname: Nickname{"Streak Master", "Consistency is your superpower", IconFire},
	},
	{
		matches: func(s *Snapshot) bool {
			return s.TotalCommits >= 100 && s.TotalPRsMerged >= 10 && s.TotalIssuesResolved >= 5
		},
		nickname: Nickname{"Balanced Coder", "Master of all trades", IconStar},
	},
	{
		matches: func(s *Snapshot) bool {
			return s.MostProductiveDay == "Saturday" || s.MostProductiveDay == "Sunday"
		},
		nickname: Nickname{"Weekend Warrior", "Weekends are for coding", IconCalendar},
	},
	{
		matches:  func(s *Snapshot) bool { return s.TotalCommits >= 50 },
		nickname: Nickname{"Rising Star", "Your journey has just begun", IconRocket},
	},
}

// defaultNickname is the catch-all for low-activity snapshots, so
// DeriveNickname is total over all snapshots.
var defaultNickname = Nickname{"Code Explorer", "Every expert was once a beginner", IconCompass}

// DeriveNickname classifies a snapshot into exactly one nickname.
func DeriveNickname(s *Snapshot) Nickname {
	for _, rule := range nicknameRules {
		if rule.matches(s) {
			return rule.nickname
		}
	}
	return defaultNickname
}

// FunFact returns a one-line observation about the snapshot. The first
// applicable fact wins, so output is deterministic for a given snapshot.
func FunFact(s *Snapshot) string {
	if s.TotalCommits >= 365 {
		return fmt.Sprintf("You averaged %d commits per day", s.TotalCommits/365)
	}
	if s.FavoriteRepo != nil {
		return fmt.Sprintf("You committed to %s %d times", s.FavoriteRepo.Name, s.FavoriteRepo.Commits)
	}
	if s.TotalCommits > 0 && s.Lines.Added > 0 {
		return fmt.Sprintf("Each commit averaged %d lines of code", s.Lines.Added/s.TotalCommits)
	}
	if s.StreakDays > 0 {
		return fmt.Sprintf("Your longest streak was %d days", s.StreakDays)
	}
	return "You're awesome!"
}
