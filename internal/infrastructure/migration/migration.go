package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

func migrations() []Migration {
	return []Migration{
		{Name: "create_resumes", Up: execStatement(createResumes)},
		{Name: "add_resumes_updated_at_index", Up: execStatement(updatedAtIndex)},
	}
}

const createResumes = `
	CREATE TABLE IF NOT EXISTS resumes (
		id              TEXT PRIMARY KEY,
		content         TEXT NOT NULL,
		original_resume TEXT NOT NULL DEFAULT '',
		job_description TEXT NOT NULL DEFAULT '',
		match_score     INTEGER NOT NULL DEFAULT 0,
		suggestions     JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const updatedAtIndex = `
	CREATE INDEX IF NOT EXISTS resumes_updated_at_idx ON resumes (updated_at);
`

func execStatement(query string) func(ctx context.Context, pool *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, query)
		return err
	}
}
