package web

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/codebuddy/internal/adapters/sqlstore"
	"github.com/emiliopalmerini/codebuddy/internal/analytics"
	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/migrate"
	"github.com/emiliopalmerini/codebuddy/internal/ports"
	"github.com/emiliopalmerini/codebuddy/internal/problems"
)

var fixedNow = time.Date(2024, 3, 10, 18, 30, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

// newTestServer wires a server over a migrated libsql file in a temp dir.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	s, _ := newTestServerWithDB(t)
	return s
}

func newTestServerWithDB(t *testing.T) (*Server, *sqlstore.DB) {
	t.Helper()

	ctx := context.Background()
	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver: "libsql",
		Path:   filepath.Join(t.TempDir(), "codebuddy.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrate.New(db, nil).RunAll(ctx)
	require.NoError(t, err)

	repo := sqlstore.NewProblemRepository(db)
	return newMockServer(repo), db
}

func newMockServer(repo ports.ProblemRepository) *Server {
	ps := problems.NewService(repo, &ports.MockMetricsExporter{}, nil).WithClock(clock)
	as := analytics.NewService(repo, nil).WithClock(clock)
	return NewServer(0, ps, as, nil)
}

func do(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func create(t *testing.T, s *Server, in problems.Input) problemResponse {
	t.Helper()

	w := do(t, s, http.MethodPost, "/api/problems", in)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp problemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newMockServer(&ports.MockProblemRepository{})

	w := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestCreateAndGetProblem(t *testing.T) {
	s := newTestServer(t)

	created := create(t, s, problems.Input{
		Name:             "Two Sum",
		Platform:         "leetcode",
		Difficulty:       "Easy",
		TimeTakenMinutes: 15,
		SolvedAt:         "2024-03-09 10:00",
		Link:             "https://leetcode.com/problems/two-sum/",
	})
	assert.Positive(t, created.ID)
	assert.Equal(t, "LEETCODE", created.Platform)
	assert.Equal(t, "LeetCode", created.PlatformName)
	assert.Equal(t, "EASY", created.Difficulty)
	assert.Equal(t, "2024-03-09T10:00:00", created.SolvedAt)

	w := do(t, s, http.MethodGet, "/api/problems/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got problemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created, got)
}

func TestCreateProblemDefaultsSolvedAtToNow(t *testing.T) {
	s := newTestServer(t)

	created := create(t, s, problems.Input{Name: "A", Platform: "OTHER", Difficulty: "HARD", TimeTakenMinutes: 5})
	assert.Equal(t, "2024-03-10T18:30:00", created.SolvedAt)
}

func TestCreateProblemValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"malformed json", `{"name":`, "body"},
		{"missing name", problems.Input{Platform: "LEETCODE", Difficulty: "EASY", TimeTakenMinutes: 1}, "name"},
		{"unknown platform", problems.Input{Name: "x", Platform: "topcoder", Difficulty: "EASY", TimeTakenMinutes: 1}, "platform"},
		{"non-positive time", problems.Input{Name: "x", Platform: "LEETCODE", Difficulty: "EASY"}, "time_taken_minutes"},
		{"bad link", problems.Input{Name: "x", Platform: "LEETCODE", Difficulty: "EASY", TimeTakenMinutes: 1, Link: "ftp://x"}, "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/problems", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "add problem", resp.Op)
			assert.Contains(t, resp.Error, tt.field)
		})
	}
}

func TestGetProblemErrors(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/problems/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodGet, "/api/problems/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/api/problems/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProblemKeepsSolvedAt(t *testing.T) {
	s := newTestServer(t)

	created := create(t, s, problems.Input{
		Name: "Two Sum", Platform: "LEETCODE", Difficulty: "EASY", TimeTakenMinutes: 15, SolvedAt: "2024-03-01",
	})

	w := do(t, s, http.MethodPut, "/api/problems/"+itoa(created.ID), problems.Input{
		Name: "Two Sum II", Platform: "LEETCODE", Difficulty: "MEDIUM", TimeTakenMinutes: 20, SolvedAt: "2020-01-01",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated problemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Two Sum II", updated.Name)
	assert.Equal(t, "MEDIUM", updated.Difficulty)
	assert.Equal(t, 20, updated.TimeTakenMinutes)
	assert.Equal(t, "2024-03-01T00:00:00", updated.SolvedAt)

	w = do(t, s, http.MethodPut, "/api/problems/999", problems.Input{
		Name: "x", Platform: "LEETCODE", Difficulty: "EASY", TimeTakenMinutes: 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProblemIsIdempotent(t *testing.T) {
	s := newTestServer(t)

	created := create(t, s, problems.Input{Name: "A", Platform: "LEETCODE", Difficulty: "EASY", TimeTakenMinutes: 1})

	w := do(t, s, http.MethodDelete, "/api/problems/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodDelete, "/api/problems/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, "/api/problems/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProblemsFilters(t *testing.T) {
	s := newTestServer(t)

	create(t, s, problems.Input{Name: "A", Platform: "LEETCODE", Difficulty: "EASY", TimeTakenMinutes: 1, SolvedAt: "2024-03-01"})
	create(t, s, problems.Input{Name: "B", Platform: "CODEFORCES", Difficulty: "HARD", TimeTakenMinutes: 2, SolvedAt: "2024-03-02"})
	create(t, s, problems.Input{Name: "C", Platform: "LEETCODE", Difficulty: "HARD", TimeTakenMinutes: 3, SolvedAt: "2024-03-03"})

	list := func(query string) []string {
		w := do(t, s, http.MethodGet, "/api/problems"+query, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp []problemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		names := make([]string, len(resp))
		for i, p := range resp {
			names[i] = p.Name
		}
		return names
	}

	assert.Equal(t, []string{"C", "B", "A"}, list(""))
	assert.Equal(t, []string{"C", "A"}, list("?platform=leetcode"))
	assert.Equal(t, []string{"C"}, list("?platform=LEETCODE&difficulty=hard"))

	w := do(t, s, http.MethodGet, "/api/problems?difficulty=impossible", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProblemsEmptyIsArray(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/problems", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAnalytics(t *testing.T) {
	s := newTestServer(t)

	create(t, s, problems.Input{Name: "A", Platform: "LEETCODE", Difficulty: "EASY", TimeTakenMinutes: 10, SolvedAt: "2024-03-08 09:00"})
	create(t, s, problems.Input{Name: "B", Platform: "LEETCODE", Difficulty: "HARD", TimeTakenMinutes: 20, SolvedAt: "2024-03-09 09:00"})
	create(t, s, problems.Input{Name: "C", Platform: "CODECHEF", Difficulty: "HARD", TimeTakenMinutes: 40, SolvedAt: "2024-03-10 09:00"})

	w := do(t, s, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp analyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalProblems)
	assert.Equal(t, int64(1), resp.TodayCount)
	assert.Equal(t, 3, resp.CurrentStreak)
	assert.Equal(t, 3, resp.MaxStreak)
	assert.Equal(t, map[string]int{"LeetCode": 2, "CodeChef": 1}, resp.PlatformDistribution)
	assert.Equal(t, map[string]int{"Easy": 1, "Hard": 2}, resp.DifficultyDistribution)
	require.NotNil(t, resp.AverageTimeMinutes)
	assert.InDelta(t, 23.333, *resp.AverageTimeMinutes, 0.01)
}

func TestAnalyticsEmpty(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, float64(0), raw["total_problems"])
	assert.Nil(t, raw["average_time_minutes"])
}

func TestPersistenceErrorMapsTo500(t *testing.T) {
	repo := &ports.MockProblemRepository{
		ListAllFunc: func(ctx context.Context) ([]*domain.Problem, error) {
			return nil, &domain.PersistenceError{Op: "list problems", Err: errors.New("disk on fire")}
		},
	}
	s := newMockServer(repo)

	w := do(t, s, http.MethodGet, "/api/analytics", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "list problems", resp.Op)
	assert.Contains(t, resp.Error, "disk on fire")
}

func TestExport(t *testing.T) {
	s := newTestServer(t)

	create(t, s, problems.Input{Name: "A", Platform: "LEETCODE", Difficulty: "EASY", TimeTakenMinutes: 10, SolvedAt: "2024-03-08"})
	create(t, s, problems.Input{Name: "B", Platform: "CODEFORCES", Difficulty: "HARD", TimeTakenMinutes: 20, SolvedAt: "2024-03-09"})

	t.Run("json", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/export", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		assert.Len(t, rows, 2)
	})

	t.Run("csv filtered", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/export?format=csv&platform=codeforces", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], "B")
	})

	t.Run("gzip", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/export?format=csv&gzip=true", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/gzip", w.Header().Get("Content-Type"))

		zr, err := gzip.NewReader(w.Body)
		require.NoError(t, err)
		raw, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(string(raw)), "\n"), 3)
	})

	t.Run("unknown format", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/export?format=xml", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)

	create(t, s, problems.Input{Name: "<Two Sum>", Platform: "LEETCODE", Difficulty: "EASY", TimeTakenMinutes: 75, SolvedAt: "2024-03-10 08:00"})

	w := do(t, s, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "&lt;Two Sum&gt;")
	assert.NotContains(t, body, "<Two Sum>")
	assert.Contains(t, body, "1h 15m")
}

func TestRequestID(t *testing.T) {
	s := newMockServer(&ports.MockProblemRepository{})

	w := do(t, s, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestCORS(t *testing.T) {
	s := newMockServer(&ports.MockProblemRepository{})

	req := httptest.NewRequest(http.MethodGet, "/api/problems", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/problems", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestIsLocalOrigin(t *testing.T) {
	assert.True(t, isLocalOrigin("http://localhost:3000"))
	assert.True(t, isLocalOrigin("http://127.0.0.1"))
	assert.False(t, isLocalOrigin("https://example.com"))
	assert.False(t, isLocalOrigin("://bad"))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestUnreadableStoredRowMapsTo500(t *testing.T) {
	s, db := newTestServerWithDB(t)

	_, err := db.ExecContext(context.Background(), `INSERT INTO problems (name, platform, difficulty, time_taken_min, solved_date)
		VALUES ('broken', 'LEETCODE', 'EASY', 10, 'legacy-garbage')`)
	require.NoError(t, err)

	for _, target := range []string{"/api/problems", "/api/analytics", "/api/problems/1"} {
		w := do(t, s, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, target)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(&domain.ValidationError{Field: "name"}))
	assert.Equal(t, http.StatusNotFound, statusFor(&domain.NotFoundError{ID: 1}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))

	wrapped := &domain.PersistenceError{Op: "list problems", Err: &domain.ValidationError{Field: "x"}}
	assert.Equal(t, http.StatusInternalServerError, statusFor(wrapped))
}
