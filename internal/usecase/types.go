package usecase

import (
	"context"
	"errors"
	"time"

	"resume-optimizer/internal/domain"
	"resume-optimizer/internal/model"
)

var (
	ErrMissingInput    = errors.New("originalResume and jobDescription are required")
	ErrEmptyContent    = errors.New("resume content is required")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrFileNotFound    = errors.New("file not found")
	ErrRenderFailed    = errors.New("pdf generation failed")
	ErrNoText          = errors.New("no text could be extracted from the file")
)

// Optimizer is the AI side of the service.
type Optimizer interface {
	OptimizeResume(ctx context.Context, resume, jobDescription string) (*model.OptimizationResult, error)
	CalculateMatchScore(ctx context.Context, resume, jobDescription string) int
}

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type ResumeRepo interface {
	Save(ctx context.Context, r *domain.Resume) error
	Get(ctx context.Context, id string) (*domain.Resume, error)
}

// GenerateResult is returned to clients after a successful optimization.
type GenerateResult struct {
	ID              string    `json:"id"`
	OptimizedResume string    `json:"optimizedResume"`
	MatchScore      int       `json:"matchScore"`
	Suggestions     []string  `json:"suggestions"`
	OriginalResume  string    `json:"originalResume"`
	JobDescription  string    `json:"jobDescription"`
	CreatedAt       time.Time `json:"createdAt"`
}

type ExportResult struct {
	FileName    string
	FilePath    string
	DownloadURL string
}

type Config struct {
	// DownloadTTL is how long a served PDF stays before deletion.
	DownloadTTL time.Duration
	// RouteBase prefixes download URLs, e.g. "/api/resume".
	RouteBase      string
	RenderAttempts int
	RenderBackoff  time.Duration
	Language       string
}

const (
	DefaultDownloadTTL    = 60 * time.Second
	DefaultRouteBase      = "/api/resume"
	DefaultRenderAttempts = 3
	DefaultRenderBackoff  = time.Second
)

func (c Config) withDefaults() Config {
	if c.DownloadTTL <= 0 {
		c.DownloadTTL = DefaultDownloadTTL
	}
	if c.RouteBase == "" {
		c.RouteBase = DefaultRouteBase
	}
	if c.RenderAttempts <= 0 {
		c.RenderAttempts = DefaultRenderAttempts
	}
	if c.RenderBackoff <= 0 {
		c.RenderBackoff = DefaultRenderBackoff
	}
	return c
}
