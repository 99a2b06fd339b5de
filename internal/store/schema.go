package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// dialect captures the differences between the supported drivers.
type dialect struct {
	name string
	// schemaFile names the bootstrap script under schema/.
	schemaFile string
	// numbered placeholders ($1, $2, ...) instead of '?'.
	numbered bool
}

var dialects = map[string]dialect{
	"sqlite3": {name: "sqlite3", schemaFile: "sqlite.sql"},
	"sqlite":  {name: "sqlite", schemaFile: "sqlite.sql"},
	"pgx":     {name: "pgx", schemaFile: "postgres.sql", numbered: true},
}

func dialectFor(driver string) (dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported store driver %q", driver)
	}
	return d, nil
}

// rebind rewrites '?' placeholders for drivers that expect numbered ones.
func (d dialect) rebind(query string) string {
	if !d.numbered {
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

// ensureSchema creates the Project, Employee and Task tables when absent.
// Existing tables are left untouched.
func ensureSchema(ctx context.Context, db *sql.DB, d dialect) error {
	content, err := schemaFS.ReadFile("schema/" + d.schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", d.schemaFile, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(string(content)) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %q: %w", firstLine(stmt), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	return nil
}

// splitStatements breaks a script into single statements so each driver can
// run them through the extended protocol. Comment lines are dropped.
func splitStatements(script string) []string {
	var lines []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var stmts []string
	for _, part := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
