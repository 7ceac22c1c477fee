package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/aryannaik/advocate-directory/internal/advocate"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS advocates (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name          TEXT    NOT NULL,
	last_name           TEXT    NOT NULL,
	city                TEXT    NOT NULL,
	degree              TEXT    NOT NULL,
	specialties         TEXT    NOT NULL DEFAULT '[]',
	years_of_experience INTEGER NOT NULL,
	phone_number        INTEGER NOT NULL,
	created_at          TEXT    NOT NULL
)`

// SQLite stores advocates in an embedded SQLite database.
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLite opens (and creates if needed) the database at path. ":memory:"
// gives a private in-memory database.
func NewSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQLite, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: every caller sees the same database, including :memory:,
	// and SQLite only has one writer anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA journal_mode = WAL"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			logger.Debug("SQLite pragma failed", zap.String("pragma", pragma), zap.Error(err))
		}
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Info("SQLite store ready", zap.String("path", path))
	return &SQLite{db: db, logger: logger}, nil
}

// Insert writes the batch in one transaction and returns the stored rows in
// batch order.
func (s *SQLite) Insert(ctx context.Context, batch []advocate.NewAdvocate) ([]advocate.Advocate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO advocates (first_name, last_name, city, degree, specialties, years_of_experience, phone_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	out := make([]advocate.Advocate, 0, len(batch))
	for _, n := range batch {
		specialties, err := json.Marshal(nonNil(n.Specialties))
		if err != nil {
			return nil, fmt.Errorf("marshal specialties: %w", err)
		}

		createdAt := time.Now().UTC()
		var id int64
		err = stmt.QueryRowContext(ctx,
			n.FirstName, n.LastName, n.City, n.Degree, string(specialties),
			n.YearsOfExperience, n.PhoneNumber, createdAt.Format(time.RFC3339Nano),
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert advocate %s %s: %w", n.FirstName, n.LastName, err)
		}
		out = append(out, n.WithID(strconv.FormatInt(id, 10), createdAt))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert: %w", err)
	}
	return out, nil
}

// List returns every advocate in id order.
func (s *SQLite) List(ctx context.Context) ([]advocate.Advocate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, city, degree, specialties, years_of_experience, phone_number, created_at
		FROM advocates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query advocates: %w", err)
	}
	defer rows.Close()

	out := []advocate.Advocate{}
	for rows.Next() {
		var (
			a           advocate.Advocate
			id          int64
			specialties string
			createdAt   string
		)
		if err := rows.Scan(&id, &a.FirstName, &a.LastName, &a.City, &a.Degree,
			&specialties, &a.YearsOfExperience, &a.PhoneNumber, &createdAt); err != nil {
			return nil, fmt.Errorf("scan advocate: %w", err)
		}
		if err := json.Unmarshal([]byte(specialties), &a.Specialties); err != nil {
			return nil, fmt.Errorf("decode specialties for advocate %d: %w", id, err)
		}
		a.Specialties = nonNil(a.Specialties)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			a.CreatedAt = t
		}
		a.ID = strconv.FormatInt(id, 10)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate advocates: %w", err)
	}
	return out, nil
}

func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM advocates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count advocates: %w", err)
	}
	return n, nil
}

func (s *SQLite) Driver() string { return DriverSQLite }

func (s *SQLite) Close() error {
	return s.db.Close()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
