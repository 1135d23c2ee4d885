package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"github.com/emiliopalmerini/codebuddy/internal/domain"
	"github.com/emiliopalmerini/codebuddy/internal/util"
)

const problemColumns = `problem_id, name, platform, difficulty, time_taken_min, solved_date, notes, link`

// ProblemRepository stores problems in the problems table. A single mutex
// serializes every operation.
type ProblemRepository struct {
	db      *sql.DB
	dialect Dialect
	mu      sync.Mutex
}

func NewProblemRepository(db *DB) *ProblemRepository {
	return &ProblemRepository{db: db.DB, dialect: db.Dialect}
}

func (r *ProblemRepository) Insert(ctx context.Context, p *domain.Problem) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `INSERT INTO problems (name, platform, difficulty, time_taken_min, solved_date, notes, link)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	args := []any{
		p.Name,
		string(p.Platform),
		string(p.Difficulty),
		p.TimeTakenMinutes,
		formatTimestamp(p.SolvedAt),
		util.NullString(p.Notes),
		util.NullString(p.Link),
	}

	var id int64
	if r.dialect.Returning {
		err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query+` RETURNING problem_id`), args...).Scan(&id)
		if err != nil {
			return 0, fail("insert problem", err)
		}
	} else {
		res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
		if err != nil {
			return 0, fail("insert problem", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, fail("insert problem", err)
		}
	}

	p.ID = id
	return id, nil
}

func (r *ProblemRepository) Update(ctx context.Context, id int64, p *domain.Problem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`UPDATE problems
		SET name = ?, platform = ?, difficulty = ?, time_taken_min = ?, notes = ?, link = ?
		WHERE problem_id = ?`),
		p.Name,
		string(p.Platform),
		string(p.Difficulty),
		p.TimeTakenMinutes,
		util.NullString(p.Notes),
		util.NullString(p.Link),
		id,
	)
	if err != nil {
		return fail("update problem", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fail("update problem", err)
	}
	if n == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

func (r *ProblemRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM problems WHERE problem_id = ?`), id); err != nil {
		return fail("delete problem", err)
	}
	return nil
}

func (r *ProblemRepository) Get(ctx context.Context, id int64) (*domain.Problem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT `+problemColumns+` FROM problems WHERE problem_id = ?`), id)
	p, err := scanProblem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fail("get problem", err)
	}
	return p, nil
}

func (r *ProblemRepository) ListAll(ctx context.Context) ([]*domain.Problem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `SELECT `+problemColumns+` FROM problems ORDER BY solved_date DESC, problem_id DESC`)
	if err != nil {
		return nil, fail("list problems", err)
	}
	defer func() { _ = rows.Close() }()

	var problems []*domain.Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fail("list problems", err)
		}
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("list problems", err)
	}
	return problems, nil
}

func (r *ProblemRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM problems`).Scan(&n); err != nil {
		return 0, fail("count problems", err)
	}
	return n, nil
}

func (r *ProblemRepository) CountSolvedOn(ctx context.Context, date civil.Date) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := date.In(time.Local)
	end := date.AddDays(1).In(time.Local)

	var n int64
	err := r.db.QueryRowContext(ctx,
		r.dialect.Rebind(`SELECT COUNT(*) FROM problems WHERE solved_date >= ? AND solved_date < ?`),
		formatTimestamp(start), formatTimestamp(end),
	).Scan(&n)
	if err != nil {
		return 0, fail("count problems solved on "+date.String(), err)
	}
	return n, nil
}

func (r *ProblemRepository) DistinctSolvedDatesDescending(ctx context.Context) ([]civil.Date, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT DATE(solved_date) AS solved_day FROM problems ORDER BY solved_day DESC`)
	if err != nil {
		return nil, fail("list solved dates", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []civil.Date
	for rows.Next() {
		var d calendarDate
		if err := rows.Scan(&d); err != nil {
			return nil, fail("list solved dates", err)
		}
		dates = append(dates, d.Date)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("list solved dates", err)
	}
	return dates, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProblem(row rowScanner) (*domain.Problem, error) {
	var (
		p          domain.Problem
		platform   sql.NullString
		difficulty sql.NullString
		minutes    sql.NullInt64
		solvedAt   wallClock
		notes      sql.NullString
		link       sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &platform, &difficulty, &minutes, &solvedAt, &notes, &link); err != nil {
		return nil, err
	}

	p.Platform = domain.PlatformFromString(platform.String)
	p.Difficulty = domain.DifficultyFromString(difficulty.String)
	p.TimeTakenMinutes = int(minutes.Int64)
	p.SolvedAt = solvedAt.Time
	p.Notes = notes.String
	p.Link = link.String
	return &p, nil
}

// fail wraps a store failure, including a stored row that cannot be read.
func fail(op string, err error) error {
	if domain.IsNotFound(err) {
		return err
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
