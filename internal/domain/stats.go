package domain

// Analytics holds summary statistics across all solved problems.
type Analytics struct {
	TotalProblems          int
	TodayCount             int64
	CurrentStreak          int
	MaxStreak              int
	PlatformDistribution   map[string]int
	DifficultyDistribution map[string]int
	// AverageTimeMinutes is nil when there are no problems.
	AverageTimeMinutes *float64
}

// PlatformDistribution counts problems per platform display name.
// Platforms without problems are omitted.
func PlatformDistribution(problems []*Problem) map[string]int {
	dist := make(map[string]int)
	for _, p := range problems {
		dist[p.Platform.DisplayName()]++
	}
	return dist
}

// DifficultyDistribution counts problems per difficulty display name.
// Difficulties without problems are omitted.
func DifficultyDistribution(problems []*Problem) map[string]int {
	dist := make(map[string]int)
	for _, p := range problems {
		dist[p.Difficulty.DisplayName()]++
	}
	return dist
}

// AverageTimeMinutes returns the mean time spent per problem.
// ok is false for an empty set.
func AverageTimeMinutes(problems []*Problem) (avg float64, ok bool) {
	if len(problems) == 0 {
		return 0, false
	}
	total := 0
	for _, p := range problems {
		total += p.TimeTakenMinutes
	}
	return float64(total) / float64(len(problems)), true
}

// ComputeAnalytics derives every aggregate that does not need the store.
// TodayCount and CurrentStreak are filled by the caller from store queries.
func ComputeAnalytics(problems []*Problem) *Analytics {
	a := &Analytics{
		TotalProblems:          len(problems),
		MaxStreak:              MaxStreak(problems),
		PlatformDistribution:   PlatformDistribution(problems),
		DifficultyDistribution: DifficultyDistribution(problems),
	}
	if avg, ok := AverageTimeMinutes(problems); ok {
		a.AverageTimeMinutes = &avg
	}
	return a
}
