package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aryannaik/advocate-directory/internal/advocate"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS advocates (
	id                  BIGSERIAL PRIMARY KEY,
	first_name          TEXT        NOT NULL,
	last_name           TEXT        NOT NULL,
	city                TEXT        NOT NULL,
	degree              TEXT        NOT NULL,
	specialties         JSONB       NOT NULL DEFAULT '[]'::jsonb,
	years_of_experience INTEGER     NOT NULL,
	phone_number        BIGINT      NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const postgresInsert = `
INSERT INTO advocates (first_name, last_name, city, degree, specialties, years_of_experience, phone_number)
VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
RETURNING id, created_at`

// Postgres stores advocates in PostgreSQL through a pgx pool.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(ctx context.Context, databaseURL string, logger *zap.Logger) (*Postgres, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(connectCtx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Info("Postgres store ready", zap.String("host", config.ConnConfig.Host))
	return &Postgres{pool: pool, logger: logger}, nil
}

// Insert sends the batch as one pipelined transaction; results come back in
// queue order.
func (p *Postgres) Insert(ctx context.Context, batch []advocate.NewAdvocate) ([]advocate.Advocate, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback(ctx)

	b := &pgx.Batch{}
	for _, n := range batch {
		specialties, err := json.Marshal(nonNil(n.Specialties))
		if err != nil {
			return nil, fmt.Errorf("marshal specialties: %w", err)
		}
		b.Queue(postgresInsert, n.FirstName, n.LastName, n.City, n.Degree,
			string(specialties), n.YearsOfExperience, n.PhoneNumber)
	}

	results := tx.SendBatch(ctx, b)
	out := make([]advocate.Advocate, 0, len(batch))
	for _, n := range batch {
		var (
			id        int64
			createdAt time.Time
		)
		if err := results.QueryRow().Scan(&id, &createdAt); err != nil {
			results.Close()
			return nil, fmt.Errorf("insert advocate %s %s: %w", n.FirstName, n.LastName, err)
		}
		out = append(out, n.WithID(strconv.FormatInt(id, 10), createdAt))
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit insert: %w", err)
	}
	return out, nil
}

func (p *Postgres) List(ctx context.Context) ([]advocate.Advocate, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, first_name, last_name, city, degree, specialties, years_of_experience, phone_number, created_at
		FROM advocates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query advocates: %w", err)
	}
	defer rows.Close()

	out := []advocate.Advocate{}
	for rows.Next() {
		var (
			a  advocate.Advocate
			id int64
		)
		if err := rows.Scan(&id, &a.FirstName, &a.LastName, &a.City, &a.Degree,
			&a.Specialties, &a.YearsOfExperience, &a.PhoneNumber, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan advocate: %w", err)
		}
		a.ID = strconv.FormatInt(id, 10)
		a.Specialties = nonNil(a.Specialties)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate advocates: %w", err)
	}
	return out, nil
}

func (p *Postgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM advocates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count advocates: %w", err)
	}
	return n, nil
}

func (p *Postgres) Driver() string { return DriverPostgres }

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
