package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/repotablo/internal/models"

	_ "modernc.org/sqlite"
)

const timeFormat = "2006-01-02T15:04:05Z"

// DB wraps the SQLite snapshot database. Snapshots are written for external
// analysis; nothing in the tool reads them back.
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(createSnapshotsTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create snapshots schema: %w", err)
	}

	if _, err := conn.Exec(createSnapshotReposTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create snapshot repos schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// SaveSnapshot records one run's stats and returns the snapshot id
func (db *DB) SaveSnapshot(stats models.Stats, source string, takenAt time.Time) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(insertSnapshot, takenAt.UTC().Format(timeFormat), source)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot id: %w", err)
	}

	stmt, err := tx.Prepare(insertSnapshotRepo)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range stats.Repos {
		_, err := stmt.Exec(
			id,
			i,
			r.Owner,
			r.Name,
			r.Stars,
			r.Forks,
			r.OpenIssues,
			r.License,
			nullIfEmpty(r.Language),
			r.Archived,
			r.CreatedAt.UTC().Format(timeFormat),
			r.PushedAt.UTC().Format(timeFormat),
			nullIfEmpty(r.Description),
			nullIfEmpty(r.Homepage),
			nullIfEmpty(strings.Join(r.Topics, ",")),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert %s: %w", r.FullName(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return id, nil
}

// SnapshotSize returns how many repositories a snapshot holds
func (db *DB) SnapshotSize(id int64) (int, error) {
	var n int
	if err := db.conn.QueryRow(countSnapshotRepos, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count snapshot repos: %w", err)
	}
	return n, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
