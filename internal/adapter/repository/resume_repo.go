package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-optimizer/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResumeRepo persists resumes in Postgres.
type ResumeRepo struct {
	pool *pgxpool.Pool
}

func NewResumeRepo(pool *pgxpool.Pool) *ResumeRepo {
	return &ResumeRepo{pool: pool}
}

func (r *ResumeRepo) Save(ctx context.Context, res *domain.Resume) error {
	suggestions := res.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	sugB, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO resumes (id, content, original_resume, job_description, match_score, suggestions, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content, original_resume = EXCLUDED.original_resume, job_description = EXCLUDED.job_description, match_score = EXCLUDED.match_score, suggestions = EXCLUDED.suggestions, updated_at = EXCLUDED.updated_at`,
		res.ID, res.Content, res.OriginalResume, res.JobDescription, res.MatchScore, sugB, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert resume %s: %w", res.ID, err)
	}
	return nil
}

func (r *ResumeRepo) Get(ctx context.Context, id string) (*domain.Resume, error) {
	var (
		res  domain.Resume
		sugB []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, content, original_resume, job_description, match_score, suggestions, created_at, updated_at
		FROM resumes WHERE id = $1`, id).
		Scan(&res.ID, &res.Content, &res.OriginalResume, &res.JobDescription, &res.MatchScore, &sugB, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrResumeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get resume %s: %w", id, err)
	}
	if len(sugB) > 0 {
		if err := json.Unmarshal(sugB, &res.Suggestions); err != nil {
			return nil, fmt.Errorf("decode suggestions for %s: %w", id, err)
		}
	}
	return &res, nil
}
