package templates

// DashboardData is everything the dashboard page renders.
type DashboardData struct {
	TotalProblems int
	TodayCount    int64
	CurrentStreak int
	MaxStreak     int
	// AverageTime is "-" when nothing has been recorded.
	AverageTime  string
	Platforms    []DistributionEntry
	Difficulties []DistributionEntry
	Problems     []ProblemRow
	// Filter echoes the active query so the form keeps its selection.
	PlatformFilter    string
	DifficultyFilter  string
	PlatformOptions   []Option
	DifficultyOptions []Option
}

type DistributionEntry struct {
	Label string
	Count int
}

type ProblemRow struct {
	ID         int64
	Name       string
	Platform   string
	Difficulty string
	Time       string
	SolvedAt   string
	Notes      string
	Link       string
}

// Option is a select choice: Value is sent, Label is shown.
type Option struct {
	Value string
	Label string
}
