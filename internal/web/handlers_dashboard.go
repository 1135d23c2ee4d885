package web

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/util"
	"github.com/emiliopalmerini/codebuddy/internal/web/templates"
)

func (s *Server) handleDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	filter, err := filterFromQuery(c)
	if err != nil {
		writeError(c, "render dashboard", err)
		return
	}

	a, err := s.analytics.Summary(ctx)
	if err != nil {
		writeError(c, "render dashboard", err)
		return
	}
	list, err := s.problems.List(ctx, filter)
	if err != nil {
		writeError(c, "render dashboard", err)
		return
	}

	data := templates.DashboardData{
		TotalProblems:     a.TotalProblems,
		TodayCount:        a.TodayCount,
		CurrentStreak:     a.CurrentStreak,
		MaxStreak:         a.MaxStreak,
		AverageTime:       util.FormatAverage(a.AverageTimeMinutes),
		Platforms:         distributionEntries(a.PlatformDistribution),
		Difficulties:      distributionEntries(a.DifficultyDistribution),
		PlatformFilter:    c.Query("platform"),
		DifficultyFilter:  c.Query("difficulty"),
		PlatformOptions:   platformOptions(),
		DifficultyOptions: difficultyOptions(),
	}
	for _, p := range list {
		data.Problems = append(data.Problems, templates.ProblemRow{
			ID:         p.ID,
			Name:       p.Name,
			Platform:   p.Platform.DisplayName(),
			Difficulty: p.Difficulty.DisplayName(),
			Time:       util.FormatMinutes(p.TimeTakenMinutes),
			SolvedAt:   util.FormatDateTime(p.SolvedAt),
			Notes:      util.Truncate(p.Notes, 80),
			Link:       p.Link,
		})
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(data).Render(ctx, c.Writer); err != nil {
		s.logger.Error("failed to render dashboard", zap.Error(err))
		_ = c.Error(err)
	}
}

// distributionEntries orders a distribution by count, largest first, then by label.
func distributionEntries(dist map[string]int) []templates.DistributionEntry {
	entries := make([]templates.DistributionEntry, 0, len(dist))
	for label, count := range dist {
		entries = append(entries, templates.DistributionEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

func platformOptions() []templates.Option {
	opts := make([]templates.Option, len(domain.Platforms))
	for i, p := range domain.Platforms {
		opts[i] = templates.Option{Value: string(p), Label: p.DisplayName()}
	}
	return opts
}

func difficultyOptions() []templates.Option {
	opts := make([]templates.Option, len(domain.Difficulties))
	for i, d := range domain.Difficulties {
		opts[i] = templates.Option{Value: string(d), Label: d.DisplayName()}
	}
	return opts
}
