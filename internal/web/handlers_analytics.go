package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type analyticsResponse struct {
	TotalProblems          int            `json:"total_problems"`
	TodayCount             int64          `json:"today_count"`
	CurrentStreak          int            `json:"current_streak"`
	MaxStreak              int            `json:"max_streak"`
	PlatformDistribution   map[string]int `json:"platform_distribution"`
	DifficultyDistribution map[string]int `json:"difficulty_distribution"`
	// AverageTimeMinutes is null when no problem is recorded.
	AverageTimeMinutes *float64 `json:"average_time_minutes"`
}

func (s *Server) handleAnalytics(c *gin.Context) {
	a, err := s.analytics.Summary(c.Request.Context())
	if err != nil {
		writeError(c, "compute analytics", err)
		return
	}

	c.JSON(http.StatusOK, analyticsResponse{
		TotalProblems:          a.TotalProblems,
		TodayCount:             a.TodayCount,
		CurrentStreak:          a.CurrentStreak,
		MaxStreak:              a.MaxStreak,
		PlatformDistribution:   a.PlatformDistribution,
		DifficultyDistribution: a.DifficultyDistribution,
		AverageTimeMinutes:     a.AverageTimeMinutes,
	})
}
