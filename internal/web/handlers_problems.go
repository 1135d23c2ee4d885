package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/problems"
)

type problemResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Platform         string `json:"platform"`
	PlatformName     string `json:"platform_name"`
	Difficulty       string `json:"difficulty"`
	DifficultyName   string `json:"difficulty_name"`
	TimeTakenMinutes int    `json:"time_taken_minutes"`
	SolvedAt         string `json:"solved_at"`
	Notes            string `json:"notes,omitempty"`
	Link             string `json:"link,omitempty"`
}

func toProblemResponse(p *domain.Problem) problemResponse {
	return problemResponse{
		ID:               p.ID,
		Name:             p.Name,
		Platform:         string(p.Platform),
		PlatformName:     p.Platform.DisplayName(),
		Difficulty:       string(p.Difficulty),
		DifficultyName:   p.Difficulty.DisplayName(),
		TimeTakenMinutes: p.TimeTakenMinutes,
		SolvedAt:         p.SolvedAt.Format("2006-01-02T15:04:05"),
		Notes:            p.Notes,
		Link:             p.Link,
	}
}

func problemID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Message: "problem id must be a positive integer, got " + strconv.Quote(raw)}
	}
	return id, nil
}

// filterFromQuery reads the optional platform and difficulty parameters.
func filterFromQuery(c *gin.Context) (domain.Filter, error) {
	var f domain.Filter
	if v := c.Query("platform"); v != "" {
		p, ok := domain.LookupPlatform(v)
		if !ok {
			return f, &domain.ValidationError{Field: "platform", Message: "unknown platform " + strconv.Quote(v)}
		}
		f.Platform = &p
	}
	if v := c.Query("difficulty"); v != "" {
		d, ok := domain.LookupDifficulty(v)
		if !ok {
			return f, &domain.ValidationError{Field: "difficulty", Message: "unknown difficulty " + strconv.Quote(v)}
		}
		f.Difficulty = &d
	}
	return f, nil
}

func bindInput(c *gin.Context) (problems.Input, error) {
	var in problems.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		return in, &domain.ValidationError{Field: "body", Message: err.Error()}
	}
	return in, nil
}

func (s *Server) handleListProblems(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		writeError(c, "list problems", err)
		return
	}

	list, err := s.problems.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, "list problems", err)
		return
	}

	resp := make([]problemResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, toProblemResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetProblem(c *gin.Context) {
	id, err := problemID(c)
	if err != nil {
		writeError(c, "get problem", err)
		return
	}

	p, err := s.problems.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, "get problem", err)
		return
	}
	c.JSON(http.StatusOK, toProblemResponse(p))
}

func (s *Server) handleCreateProblem(c *gin.Context) {
	in, err := bindInput(c)
	if err != nil {
		writeError(c, "add problem", err)
		return
	}

	p, err := s.problems.Add(c.Request.Context(), in)
	if err != nil {
		writeError(c, "add problem", err)
		return
	}
	c.JSON(http.StatusCreated, toProblemResponse(p))
}

func (s *Server) handleUpdateProblem(c *gin.Context) {
	id, err := problemID(c)
	if err != nil {
		writeError(c, "update problem", err)
		return
	}
	in, err := bindInput(c)
	if err != nil {
		writeError(c, "update problem", err)
		return
	}

	p, err := s.problems.Edit(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, "update problem", err)
		return
	}
	c.JSON(http.StatusOK, toProblemResponse(p))
}

func (s *Server) handleDeleteProblem(c *gin.Context) {
	id, err := problemID(c)
	if err != nil {
		writeError(c, "delete problem", err)
		return
	}

	if err := s.problems.Remove(c.Request.Context(), id); err != nil {
		writeError(c, "delete problem", err)
		return
	}
	c.Status(http.StatusNoContent)
}
