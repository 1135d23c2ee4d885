// Package export writes problem listings as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat resolves a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", &domain.ValidationError{Field: "format", Message: fmt.Sprintf("unsupported export format %q (use json or csv)", s)}
}

// ContentType returns the MIME type of the encoding.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json"
}

// Problem is the exported shape of a problem.
type Problem struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Platform         string `json:"platform"`
	Difficulty       string `json:"difficulty"`
	TimeTakenMinutes int    `json:"time_taken_minutes"`
	SolvedAt         string `json:"solved_at"`
	Notes            string `json:"notes,omitempty"`
	Link             string `json:"link,omitempty"`
}

var csvHeader = []string{"id", "name", "platform", "difficulty", "time_taken_minutes", "solved_at", "notes", "link"}

// FromDomain converts problems to their exported shape.
func FromDomain(problems []*domain.Problem) []Problem {
	out := make([]Problem, 0, len(problems))
	for _, p := range problems {
		out = append(out, Problem{
			ID:               p.ID,
			Name:             p.Name,
			Platform:         string(p.Platform),
			Difficulty:       string(p.Difficulty),
			TimeTakenMinutes: p.TimeTakenMinutes,
			SolvedAt:         p.SolvedAt.Format("2006-01-02T15:04:05"),
			Notes:            p.Notes,
			Link:             p.Link,
		})
	}
	return out
}

// Write encodes problems to w.
func Write(w io.Writer, format Format, problems []*domain.Problem) error {
	rows := FromDomain(problems)

	switch format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, r := range rows {
			record := []string{
				strconv.FormatInt(r.ID, 10),
				r.Name,
				r.Platform,
				r.Difficulty,
				strconv.Itoa(r.TimeTakenMinutes),
				r.SolvedAt,
				r.Notes,
				r.Link,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}
}

// WriteGzip encodes problems to w through a gzip stream.
func WriteGzip(w io.Writer, format Format, problems []*domain.Problem) error {
	zw := gzip.NewWriter(w)
	if err := Write(zw, format, problems); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// Filename returns the default file name for an export.
func Filename(format Format, gzipped bool) string {
	name := "problems." + string(format)
	if gzipped {
		name += ".gz"
	}
	return name
}
