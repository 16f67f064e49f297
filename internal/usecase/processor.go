package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"resume-optimizer/internal/cleanup"
	"resume-optimizer/internal/domain"
	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/layout"
	"resume-optimizer/internal/storage"
	"resume-optimizer/pkg/ai/formatters"
)

type Processor struct {
	optimizer Optimizer
	renderer  Renderer
	repo      ResumeRepo
	store     storage.Store
	registry  cleanup.Registry
	cfg       Config
	now       func() time.Time
}

func NewProcessor(o Optimizer, r Renderer, repo ResumeRepo, store storage.Store, registry cleanup.Registry, cfg Config) *Processor {
	return &Processor{
		optimizer: o,
		renderer:  r,
		repo:      repo,
		store:     store,
		registry:  registry,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
	}
}

// Generate optimizes original against jobDescription and stores the result.
// Inputs are validated before the model is called.
func (p *Processor) Generate(ctx context.Context, original, jobDescription string) (*GenerateResult, error) {
	original = strings.TrimSpace(original)
	jobDescription = strings.TrimSpace(jobDescription)
	if original == "" || jobDescription == "" {
		return nil, ErrMissingInput
	}

	res, err := p.optimizer.OptimizeResume(ctx, original, jobDescription)
	if err != nil {
		return nil, err
	}

	now := p.now()
	rec := &domain.Resume{
		ID:             domain.NewResumeID(now),
		Content:        res.OptimizedResume,
		OriginalResume: original,
		JobDescription: jobDescription,
		MatchScore:     res.MatchScore,
		Suggestions:    res.Suggestions,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := p.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}
	slog.Info("resume optimized", "id", rec.ID, "matchScore", rec.MatchScore, "suggestions", len(rec.Suggestions))

	return &GenerateResult{
		ID:              rec.ID,
		OptimizedResume: rec.Content,
		MatchScore:      rec.MatchScore,
		Suggestions:     rec.Suggestions,
		OriginalResume:  original,
		JobDescription:  jobDescription,
		CreatedAt:       now,
	}, nil
}

// Update replaces the content of resume id, creating the record if needed.
func (p *Processor) Update(ctx context.Context, id, content string) (*domain.Resume, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	now := p.now()
	rec, err := p.repo.Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrResumeNotFound):
		rec = &domain.Resume{ID: id, CreatedAt: now, Suggestions: []string{}}
	case err != nil:
		return nil, fmt.Errorf("load resume: %w", err)
	}
	rec.Content = content
	rec.UpdatedAt = now
	if err := p.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}
	return rec, nil
}

func (p *Processor) Get(ctx context.Context, id string) (*domain.Resume, error) {
	return p.repo.Get(ctx, id)
}

// Score asks the model for a standalone match score.
func (p *Processor) Score(ctx context.Context, original, jobDescription string) (int, error) {
	original = strings.TrimSpace(original)
	jobDescription = strings.TrimSpace(jobDescription)
	if original == "" || jobDescription == "" {
		return 0, ErrMissingInput
	}
	return p.optimizer.CalculateMatchScore(ctx, original, jobDescription), nil
}

// Export renders content as a PDF and stores it for download. Blank content
// falls back to the stored resume.
func (p *Processor) Export(ctx context.Context, id, content string) (*ExportResult, error) {
	if strings.TrimSpace(content) == "" {
		rec, err := p.repo.Get(ctx, id)
		if errors.Is(err, domain.ErrResumeNotFound) {
			return nil, ErrEmptyContent
		}
		if err != nil {
			return nil, fmt.Errorf("load resume: %w", err)
		}
		if strings.TrimSpace(rec.Content) == "" {
			return nil, ErrEmptyContent
		}
		content = rec.Content
	}

	html, err := layout.Document(content, p.layoutOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	pdf, err := p.renderWithRetry(ctx, html)
	if err != nil {
		return nil, err
	}

	name := domain.ExportFileName(id, p.now())
	if err := p.store.Save(ctx, name, bytes.NewReader(pdf)); err != nil {
		return nil, fmt.Errorf("store pdf: %w", err)
	}
	slog.Info("resume exported", "id", id, "file", name, "bytes", len(pdf))

	return &ExportResult{
		FileName:    name,
		FilePath:    p.store.Location(name),
		DownloadURL: p.DownloadURL(id, name),
	}, nil
}

// DownloadURL is the client-facing link for an exported file.
func (p *Processor) DownloadURL(id, name string) string {
	return fmt.Sprintf("%s/%s/download?file=%s", p.cfg.RouteBase, url.PathEscape(id), url.QueryEscape(name))
}

func (p *Processor) renderWithRetry(ctx context.Context, html string) ([]byte, error) {
	var (
		pdf       []byte
		renderErr error
	)
	for i := 0; i < p.cfg.RenderAttempts; i++ {
		pdf, renderErr = p.renderer.RenderHTMLToPDF(ctx, html)
		if renderErr == nil {
			if bytes.HasPrefix(pdf, []byte("%PDF")) {
				return pdf, nil
			}
			renderErr = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		slog.Warn("render attempt failed", "attempt", i+1, "error", renderErr)
		if i < p.cfg.RenderAttempts-1 {
			backoff := time.Duration(1<<i) * p.cfg.RenderBackoff
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	slog.Error("rendering failed", "attempts", p.cfg.RenderAttempts, "error", renderErr)
	return nil, fmt.Errorf("%w: %v", ErrRenderFailed, renderErr)
}

func (p *Processor) layoutOptions() layout.Options {
	if formatters.NormalizeLanguage(p.cfg.Language) == formatters.LanguageEnglish {
		return layout.Options{Title: "Resume", Lang: "en"}
	}
	return layout.Options{}
}

// Download opens an exported file for streaming and schedules its deletion
// DownloadTTL after this call. The caller closes the reader.
func (p *Processor) Download(ctx context.Context, id, name string) (io.ReadCloser, error) {
	if !storage.ValidName(name) || !strings.HasSuffix(name, ".pdf") {
		return nil, ErrInvalidFileName
	}
	rc, err := p.store.Open(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	at := p.now().Add(p.cfg.DownloadTTL)
	if err := p.registry.Schedule(ctx, name, at); err != nil {
		// the orphan sweep still removes the file eventually
		slog.Warn("schedule cleanup failed", "id", id, "file", name, "error", err)
	}
	return rc, nil
}

// Extract returns the plain text of an uploaded resume file.
func (p *Processor) Extract(ctx context.Context, contentType, fileName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := extract.Text(extract.DetectType(contentType, fileName), data)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
