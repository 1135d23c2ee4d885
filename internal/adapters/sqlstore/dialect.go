package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between the supported backends.
type Dialect struct {
	// Name selects the migration set under migrations/.
	Name string
	// DriverName is the database/sql driver registered for the backend.
	DriverName string
	// Numbered uses $1, $2... bind parameters instead of ?.
	Numbered bool
	// Returning fetches generated ids with RETURNING instead of LastInsertId.
	Returning bool
	// DefaultPort is used when no server port is configured.
	DefaultPort int
}

var (
	DialectLibSQL   = Dialect{Name: "sqlite", DriverName: "libsql"}
	DialectSQLite   = Dialect{Name: "sqlite", DriverName: "sqlite"}
	DialectMySQL    = Dialect{Name: "mysql", DriverName: "mysql", DefaultPort: 3306}
	DialectPostgres = Dialect{Name: "postgres", DriverName: "postgres", Numbered: true, Returning: true, DefaultPort: 5432}
)

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "", "libsql", "turso":
		return DialectLibSQL, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "mysql":
		return DialectMySQL, nil
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}

// Rebind rewrites ? placeholders for dialects with numbered parameters.
// Queries in this package never contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsSQLite reports whether the backend speaks the SQLite dialect.
func (d Dialect) IsSQLite() bool {
	return d.Name == "sqlite"
}
