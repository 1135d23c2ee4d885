package domain

import (
	"strings"
	"time"
)

// Platform is the judge a problem was solved on.
type Platform string

const (
	PlatformLeetCode   Platform = "LEETCODE"
	PlatformCodeforces Platform = "CODEFORCES"
	PlatformCodeChef   Platform = "CODECHEF"
	PlatformHackerRank Platform = "HACKERRANK"
	PlatformOther      Platform = "OTHER"
)

// Platforms lists every platform in display order.
var Platforms = []Platform{
	PlatformLeetCode,
	PlatformCodeforces,
	PlatformCodeChef,
	PlatformHackerRank,
	PlatformOther,
}

var platformDisplayNames = map[Platform]string{
	PlatformLeetCode:   "LeetCode",
	PlatformCodeforces: "Codeforces",
	PlatformCodeChef:   "CodeChef",
	PlatformHackerRank: "HackerRank",
	PlatformOther:      "Other",
}

// platformLookup maps lower-cased canonical and display names to platforms.
var platformLookup = map[string]Platform{
	"leetcode":   PlatformLeetCode,
	"codeforces": PlatformCodeforces,
	"codechef":   PlatformCodeChef,
	"hackerrank": PlatformHackerRank,
	"other":      PlatformOther,
}

// DisplayName returns the human-readable platform name.
func (p Platform) DisplayName() string {
	if name, ok := platformDisplayNames[p]; ok {
		return name
	}
	return platformDisplayNames[PlatformOther]
}

func (p Platform) String() string { return p.DisplayName() }

// LookupPlatform resolves s case-insensitively and reports whether it matched.
func LookupPlatform(s string) (Platform, bool) {
	p, ok := platformLookup[strings.ToLower(strings.TrimSpace(s))]
	return p, ok
}

// PlatformFromString resolves s, falling back to PlatformOther.
// Used for values read back from storage, which may hold legacy spellings.
func PlatformFromString(s string) Platform {
	if p, ok := LookupPlatform(s); ok {
		return p
	}
	return PlatformOther
}

// Difficulty is the judge-assigned difficulty of a problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Difficulties lists every difficulty in display order.
var Difficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
}

var difficultyDisplayNames = map[Difficulty]string{
	DifficultyEasy:   "Easy",
	DifficultyMedium: "Medium",
	DifficultyHard:   "Hard",
}

var difficultyLookup = map[string]Difficulty{
	"easy":   DifficultyEasy,
	"medium": DifficultyMedium,
	"hard":   DifficultyHard,
}

// DisplayName returns the human-readable difficulty name.
func (d Difficulty) DisplayName() string {
	if name, ok := difficultyDisplayNames[d]; ok {
		return name
	}
	return difficultyDisplayNames[DifficultyMedium]
}

func (d Difficulty) String() string { return d.DisplayName() }

// LookupDifficulty resolves s case-insensitively and reports whether it matched.
func LookupDifficulty(s string) (Difficulty, bool) {
	d, ok := difficultyLookup[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// DifficultyFromString resolves s, falling back to DifficultyMedium.
func DifficultyFromString(s string) Difficulty {
	if d, ok := LookupDifficulty(s); ok {
		return d
	}
	return DifficultyMedium
}

// Problem is a single solved problem.
type Problem struct {
	ID               int64
	Name             string
	Platform         Platform
	Difficulty       Difficulty
	TimeTakenMinutes int
	SolvedAt         time.Time
	Notes            string
	Link             string
}

// Filter narrows a problem listing. Nil fields match everything.
type Filter struct {
	Platform   *Platform
	Difficulty *Difficulty
}

// Match reports whether p passes the filter.
func (f Filter) Match(p *Problem) bool {
	if f.Platform != nil && p.Platform != *f.Platform {
		return false
	}
	if f.Difficulty != nil && p.Difficulty != *f.Difficulty {
		return false
	}
	return true
}

// Apply returns the problems that pass the filter, preserving order.
func (f Filter) Apply(problems []*Problem) []*Problem {
	if f.Platform == nil && f.Difficulty == nil {
		return problems
	}
	out := make([]*Problem, 0, len(problems))
	for _, p := range problems {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// TruncateToSecond drops sub-second precision and the monotonic reading,
// keeping the wall clock in t's location. Storage keeps seconds only.
func TruncateToSecond(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}
