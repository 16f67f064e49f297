package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v4/pgxpool"

	httpadapter "resume-optimizer/internal/adapter/http"
	repo "resume-optimizer/internal/adapter/repository"
	"resume-optimizer/internal/cleanup"
	"resume-optimizer/internal/config"
	"resume-optimizer/internal/infrastructure/migration"
	"resume-optimizer/internal/storage"
	"resume-optimizer/internal/storage/local"
	s3store "resume-optimizer/internal/storage/s3"
	"resume-optimizer/internal/usecase"
	"resume-optimizer/pkg/ai"
	infra "resume-optimizer/pkg/infrastructure"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Renderer  *infra.ChromedpRenderer
	Store     storage.Store
	Registry  cleanup.Registry
	Processor *usecase.Processor
	Handler   *httpadapter.Handler
	Checks    map[string]httpadapter.HealthCheck
}

func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	c := &Container{Checks: map[string]httpadapter.HealthCheck{}}

	gen, err := ai.NewGeminiGenerator(ctx, cfg.GoogleAPIKey, cfg.AIModel)
	if err != nil {
		return nil, err
	}
	aiClient := ai.NewClient(gen, cfg.AILanguage)
	slog.Info("ai client ready", "model", gen.Model(), "language", aiClient.Language())

	var resumes usecase.ResumeRepo = repo.NewMemoryResumeRepo()
	c.Pool, err = infra.NewResumePool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if c.Pool != nil {
		if err := migration.RunMigrations(ctx, c.Pool); err != nil {
			c.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		resumes = repo.NewResumeRepo(c.Pool)
		c.Checks["db"] = c.Pool.Ping
	} else {
		slog.Warn("DATABASE_URL not set, resumes are kept in memory")
	}

	c.Redis, err = infra.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		c.Close()
		return nil, err
	}
	if c.Redis != nil {
		c.Registry = cleanup.NewRedisRegistry(c.Redis, cleanup.DefaultRedisKey)
		c.Checks["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }
	} else {
		c.Registry = cleanup.NewMemoryRegistry()
	}

	c.Store, err = newStore(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Renderer = infra.NewChromedpRenderer(infra.RendererConfig{
		ChromePath:  cfg.ChromePath,
		Concurrency: cfg.RenderConcurrency,
		Timeout:     cfg.RenderTimeout,
	})

	c.Processor = usecase.NewProcessor(aiClient, c.Renderer, resumes, c.Store, c.Registry, usecase.Config{
		DownloadTTL: cfg.DownloadTTL,
		Language:    cfg.AILanguage,
	})
	c.Handler = httpadapter.NewHandler(c.Processor)
	return c, nil
}

func newStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.ExportStore == "s3" {
		slog.Info("exports stored in s3", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	}
	slog.Info("exports stored on disk", "dir", cfg.ExportDir)
	return local.New(cfg.ExportDir)
}

// Close releases resources in reverse order of creation.
func (c *Container) Close() {
	if c.Renderer != nil {
		c.Renderer.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
