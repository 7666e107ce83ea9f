package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const schemaTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at TEXT NOT NULL
)`

type migration struct {
	version string
	up      string
	down    string
}

// MigrateUp applies every migration not yet recorded in schema_migrations,
// oldest first, each in its own transaction.
func MigrateUp(db *sql.DB) error {
	if db == nil {
		return ErrNilDB
	}
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	applied, err := appliedSet(db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		err := inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.up); err != nil {
				return err
			}
			_, err := tx.Exec(`INSERT INTO schema_migrations(version, applied_at) VALUES(?, ?)`,
				m.version, time.Now().UTC().Format(time.RFC3339))
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
	}
	return nil
}

// MigrateDown reverts applied migrations newest first.
func MigrateDown(db *sql.DB) error {
	if db == nil {
		return ErrNilDB
	}
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	applied, err := appliedSet(db)
	if err != nil {
		return err
	}
	for i := len(migrations) - 1; i >= 0; i-- {
		m := migrations[i]
		if !applied[m.version] {
			continue
		}
		err := inTx(db, func(tx *sql.Tx) error {
			if m.down != "" {
				if _, err := tx.Exec(m.down); err != nil {
					return err
				}
			}
			_, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = ?`, m.version)
			return err
		})
		if err != nil {
			return fmt.Errorf("revert migration %s: %w", m.version, err)
		}
	}
	return nil
}

// AppliedMigrations lists recorded versions in order.
func AppliedMigrations(db *sql.DB) ([]string, error) {
	set, err := appliedSet(db)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func appliedSet(db *sql.DB) (map[string]bool, error) {
	if _, err := db.Exec(schemaTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()
	out := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}

// loadMigrations pairs NNNN_name.up.sql with its .down.sql by version.
func loadMigrations() ([]migration, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	byVersion := map[string]*migration{}
	for _, name := range entries {
		base := path.Base(name)
		var version, kind string
		switch {
		case strings.HasSuffix(base, ".up.sql"):
			version, kind = strings.TrimSuffix(base, ".up.sql"), "up"
		case strings.HasSuffix(base, ".down.sql"):
			version, kind = strings.TrimSuffix(base, ".down.sql"), "down"
		default:
			continue
		}
		raw, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		m := byVersion[version]
		if m == nil {
			m = &migration{version: version}
			byVersion[version] = m
		}
		if kind == "up" {
			m.up = string(raw)
		} else {
			m.down = string(raw)
		}
	}
	out := make([]migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.up == "" {
			return nil, fmt.Errorf("migration %s has no up script", m.version)
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func inTx(db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
