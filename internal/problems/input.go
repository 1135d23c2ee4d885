package problems

import (
	"net/url"
	"strings"
	"time"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
)

// Input is the raw form of a problem as entered by a user.
type Input struct {
	Name             string `json:"name"`
	Platform         string `json:"platform"`
	Difficulty       string `json:"difficulty"`
	TimeTakenMinutes int    `json:"time_taken_minutes"`
	// SolvedAt is optional. Accepted forms: 2006-01-02, 2006-01-02 15:04
	// and 2006-01-02 15:04:05, read as local time.
	SolvedAt string `json:"solved_at,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Link     string `json:"link,omitempty"`
}

var solvedAtLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FromProblem returns the input that reproduces p.
func FromProblem(p *domain.Problem) Input {
	return Input{
		Name:             p.Name,
		Platform:         string(p.Platform),
		Difficulty:       string(p.Difficulty),
		TimeTakenMinutes: p.TimeTakenMinutes,
		SolvedAt:         p.SolvedAt.Format(solvedAtLayouts[0]),
		Notes:            p.Notes,
		Link:             p.Link,
	}
}

// problem validates the input and converts it. SolvedAt stays zero when
// the input leaves it empty.
func (in Input) problem() (*domain.Problem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "problem name is required"}
	}

	platform, ok := domain.LookupPlatform(in.Platform)
	if !ok {
		return nil, &domain.ValidationError{Field: "platform", Message: "unknown platform " + quote(in.Platform)}
	}

	difficulty, ok := domain.LookupDifficulty(in.Difficulty)
	if !ok {
		return nil, &domain.ValidationError{Field: "difficulty", Message: "unknown difficulty " + quote(in.Difficulty)}
	}

	if in.TimeTakenMinutes <= 0 {
		return nil, &domain.ValidationError{Field: "time_taken_minutes", Message: "time taken must be a positive number of minutes"}
	}

	var solvedAt time.Time
	if s := strings.TrimSpace(in.SolvedAt); s != "" {
		t, err := parseSolvedAt(s)
		if err != nil {
			return nil, err
		}
		solvedAt = t
	}

	link := strings.TrimSpace(in.Link)
	if err := CheckLink(link); err != nil {
		return nil, err
	}

	return &domain.Problem{
		Name:             name,
		Platform:         platform,
		Difficulty:       difficulty,
		TimeTakenMinutes: in.TimeTakenMinutes,
		SolvedAt:         solvedAt,
		Notes:            strings.TrimSpace(in.Notes),
		Link:             link,
	}, nil
}

// CheckSolvedAt validates an optional solve date.
func CheckSolvedAt(s string) error {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	_, err := parseSolvedAt(s)
	return err
}

// CheckLink validates an optional problem URL.
func CheckLink(s string) error {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &domain.ValidationError{Field: "link", Message: "link must be an absolute http(s) URL"}
	}
	return nil
}

func parseSolvedAt(s string) (time.Time, error) {
	for _, layout := range solvedAtLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.ValidationError{Field: "solved_at", Message: "unparseable date " + quote(s) + ", expected YYYY-MM-DD [HH:MM[:SS]]"}
}

func quote(s string) string {
	return `"` + s + `"`
}
