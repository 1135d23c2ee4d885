package templates

import (
	"fmt"
	"strconv"
	"strings"
)

func statusLine(d DashboardData) string {
	return fmt.Sprintf("Total Problems: %d | Today: %d | Current Streak: %d days", d.TotalProblems, d.TodayCount, d.CurrentStreak)
}

func days(n int) string {
	return strconv.Itoa(n) + " days"
}

func formatCount(n int64) string {
	return strconv.FormatInt(n, 10)
}

func isSelected(value, selected string) bool {
	return selected != "" && strings.EqualFold(value, selected)
}

// difficultyKey is the lowercase value the stylesheet matches on.
func difficultyKey(difficulty string) string {
	return strings.ToLower(difficulty)
}
