// Package trainingdb implements the schema initializer stage: a best-effort,
// one-shot application of the bundled SQL schema to the training database.
//
// Nothing in this package is fatal to the bootstrap. A missing schema file is
// a warning and a skip; statement errors are logged and swallowed, since
// reapplying a CREATE-TABLE schema to an already-initialized database errors
// harmlessly on container restart. The post-initialization table count is
// diagnostic only.
package trainingdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/drussell23/jarvis-bootstrap/internal/config"
	"github.com/drussell23/jarvis-bootstrap/internal/logging"
)

// Report captures the outcome of the initialization attempt for the bootstrap
// report and diagnostic logging.
type Report struct {
	SchemaPath  string `json:"schema_path"`
	SchemaFound bool   `json:"schema_found"`
	Applied     int    `json:"statements_applied"`
	AlreadyInit int    `json:"statements_already_applied"`
	Failed      int    `json:"statements_failed"`
	TableCount  int    `json:"table_count"`
}

// Open opens (and creates if needed) the SQLite training database.
// The parent directory must exist; the provisioner guarantees that.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open training database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping training database: %w", err)
	}
	return db, nil
}

// Initialize applies the schema file to the training database if the file is
// present, then queries the table count for diagnostics. Always returns a
// report and never an error: database initialization is not a precondition
// for startup.
func Initialize(ctx context.Context, cfg *config.RuntimeConfig) *Report {
	rep := &Report{SchemaPath: cfg.SchemaPath()}

	schema, err := os.ReadFile(rep.SchemaPath)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Warn("Schema file not found at %s, skipping database initialization", rep.SchemaPath)
		} else {
			logging.Warn("Cannot read schema file %s: %v", rep.SchemaPath, err)
		}
		return rep
	}
	rep.SchemaFound = true

	db, err := Open(ctx, cfg.TrainingDBPath)
	if err != nil {
		logging.Warn("Training database unavailable: %v", err)
		return rep
	}
	defer func() { _ = db.Close() }()

	for _, stmt := range splitStatements(string(schema)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// "already exists" is the expected idempotent-reapply case;
			// anything else may indicate genuine schema trouble.
			if strings.Contains(err.Error(), "already exists") {
				rep.AlreadyInit++
				logging.Debug("Schema statement already applied: %v", err)
			} else {
				rep.Failed++
				logging.Warn("Schema statement failed: %v", err)
			}
			continue
		}
		rep.Applied++
	}

	rep.TableCount = TableCount(ctx, db)
	return rep
}

// TableCount returns the number of tables in the database, or zero if the
// query fails. Used for diagnostic logging only.
func TableCount(ctx context.Context, db *sql.DB) int {
	var count int
	row := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'`)
	if err := row.Scan(&count); err != nil {
		logging.Warn("Table count query failed: %v", err)
		return 0
	}
	return count
}

// splitStatements splits a SQL script into executable statements. Assumes the
// schema contains no semicolons inside statement bodies (no triggers); the
// bundled schema is CREATE TABLE / CREATE INDEX only.
func splitStatements(script string) []string {
	var stmts []string
	for _, chunk := range strings.Split(script, ";") {
		stmt := strings.TrimSpace(stripLineComments(chunk))
		if stmt == "" {
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// stripLineComments removes "--" line comments so a chunk that is only
// commentary does not count as a statement.
func stripLineComments(chunk string) string {
	var b strings.Builder
	for _, line := range strings.Split(chunk, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
