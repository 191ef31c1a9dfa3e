// Package pgrepo loads reference data (skill taxonomy and course catalog)
// from PostgreSQL. It is an optional source: the service reads it once at
// startup and on reload signals, then serves from immutable snapshots.
package pgrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobmatch/pkg/courses"
	"github.com/artem13815/jobmatch/pkg/taxonomy"
)

// Connect opens a pgx connection pool and performs a Ping to ensure connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	// Reasonable defaults for a read-mostly reference store
	config.MaxConns = 4
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

type Repository struct {
	pool *pgxpool.Pool
}

// New ensures the reference-data schema exists and returns a repository.
func New(ctx context.Context, pool *pgxpool.Pool) (*Repository, error) {
	const schema = `
CREATE TABLE IF NOT EXISTS skill_taxonomy (
	position  INT  PRIMARY KEY,
	canonical TEXT NOT NULL UNIQUE,
	aliases   TEXT[] NOT NULL DEFAULT '{}'
);
CREATE TABLE IF NOT EXISTS course_catalog (
	skill    TEXT NOT NULL,
	position INT  NOT NULL,
	title    TEXT NOT NULL,
	provider TEXT NOT NULL DEFAULT '',
	url      TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (skill, position)
);`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure refdata schema: %w", err)
	}
	return &Repository{pool: pool}, nil
}

// LoadTaxonomy reads the full vocabulary ordered by position.
func (r *Repository) LoadTaxonomy(ctx context.Context) (*taxonomy.Taxonomy, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT canonical, aliases FROM skill_taxonomy ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query skill_taxonomy: %w", err)
	}
	defer rows.Close()

	var entries []taxonomy.Entry
	for rows.Next() {
		var e taxonomy.Entry
		if err := rows.Scan(&e.Canonical, &e.Aliases); err != nil {
			return nil, fmt.Errorf("scan skill_taxonomy row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skill_taxonomy: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("skill_taxonomy table is empty")
	}
	return taxonomy.New(entries), nil
}

// LoadCatalog reads the course catalog, keeping per-skill position order and
// applying the recommendation cap.
func (r *Repository) LoadCatalog(ctx context.Context, cap int) (*courses.Catalog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT skill, title, provider, url FROM course_catalog ORDER BY skill, position`)
	if err != nil {
		return nil, fmt.Errorf("query course_catalog: %w", err)
	}
	defer rows.Close()

	raw := map[string][]courses.CourseRef{}
	for rows.Next() {
		var skill string
		var ref courses.CourseRef
		if err := rows.Scan(&skill, &ref.Title, &ref.Provider, &ref.URL); err != nil {
			return nil, fmt.Errorf("scan course_catalog row: %w", err)
		}
		raw[skill] = append(raw[skill], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course_catalog: %w", err)
	}
	return courses.FromMap(raw, cap), nil
}
