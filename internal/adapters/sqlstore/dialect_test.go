package sqlstore

import (
	"strings"
	"testing"
)

func TestDialect_Rebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite untouched", DialectSQLite, "SELECT * FROM problems WHERE a = ? AND b = ?", "SELECT * FROM problems WHERE a = ? AND b = ?"},
		{"mysql untouched", DialectMySQL, "DELETE FROM problems WHERE problem_id = ?", "DELETE FROM problems WHERE problem_id = ?"},
		{"postgres numbered", DialectPostgres, "UPDATE problems SET name = ?, notes = ? WHERE problem_id = ?", "UPDATE problems SET name = $1, notes = $2 WHERE problem_id = $3"},
		{"no placeholders", DialectPostgres, "SELECT COUNT(*) FROM problems", "SELECT COUNT(*) FROM problems"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.Rebind(tt.query); got != tt.want {
				t.Errorf("Rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		driver  string
		want    Dialect
		wantErr bool
	}{
		{"", DialectLibSQL, false},
		{"libsql", DialectLibSQL, false},
		{"SQLite", DialectSQLite, false},
		{"mysql", DialectMySQL, false},
		{"postgresql", DialectPostgres, false},
		{"oracle", Dialect{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := DialectFor(tt.driver)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DialectFor(%q) error = %v, wantErr %v", tt.driver, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DialectFor(%q) = %+v, want %+v", tt.driver, got, tt.want)
			}
		})
	}
}

func TestBuildDSN(t *testing.T) {
	opts := Options{Path: "/tmp/cb.db", Host: "db", Port: 3306, User: "root", Password: "pw", Name: "codebuddy_db"}

	tests := []struct {
		name    string
		dialect Dialect
		want    string
	}{
		{"libsql", DialectLibSQL, "file:/tmp/cb.db"},
		{"sqlite", DialectSQLite, "/tmp/cb.db?_pragma=busy_timeout(5000)"},
		{"postgres", DialectPostgres, "postgres://root:pw@db:3306/codebuddy_db?sslmode=disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildDSN(tt.dialect, opts, opts.Name)
			if err != nil {
				t.Fatalf("buildDSN() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("buildDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureDatabase_RejectsUnsafeNames(t *testing.T) {
	err := ensureDatabase(t.Context(), DialectMySQL, Options{Name: "x`; DROP DATABASE y"})
	if err == nil {
		t.Fatal("expected invalid database name error")
	}
}

func TestBuildDSN_DefaultPortPerDialect(t *testing.T) {
	opts := Options{Host: "db", User: "root", Password: "pw", Name: "codebuddy_db"}

	got, err := buildDSN(DialectPostgres, opts, opts.Name)
	if err != nil {
		t.Fatalf("buildDSN() error = %v", err)
	}
	if want := "postgres://root:pw@db:5432/codebuddy_db?sslmode=disable"; got != want {
		t.Errorf("buildDSN() = %q, want %q", got, want)
	}

	got, err = buildDSN(DialectMySQL, opts, opts.Name)
	if err != nil {
		t.Fatalf("buildDSN() error = %v", err)
	}
	if !strings.Contains(got, "tcp(db:3306)") {
		t.Errorf("buildDSN() = %q, want address db:3306", got)
	}

	opts.Port = 6000
	got, err = buildDSN(DialectPostgres, opts, opts.Name)
	if err != nil {
		t.Fatalf("buildDSN() error = %v", err)
	}
	if !strings.Contains(got, "@db:6000/") {
		t.Errorf("buildDSN() = %q, want explicit port 6000", got)
	}
}
