package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resume-optimizer/internal/model"
	"resume-optimizer/pkg/ai/formatters"
)

// ErrOptimizationFailed wraps any failure to obtain model output.
var ErrOptimizationFailed = errors.New("resume optimization failed, please retry later")

var errEmptyResponse = errors.New("empty model response")

// Client builds prompts, calls the generator and parses its answers.
type Client struct {
	gen      Generator
	language string
	labels   formatters.Labels
	attempts int
	backoff  time.Duration
}

type Option func(*Client)

// WithRetry sets how many times a failing generator call is attempted and the
// base delay of the exponential backoff between attempts.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if backoff >= 0 {
			c.backoff = backoff
		}
	}
}

func NewClient(gen Generator, language string, opts ...Option) *Client {
	c := &Client{
		gen:      gen,
		language: formatters.NormalizeLanguage(language),
		labels:   formatters.GetLabels(language),
		attempts: 3,
		backoff:  time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Language() string { return c.language }

// OptimizeResume asks the model to rewrite resume for jobDescription.
func (c *Client) OptimizeResume(ctx context.Context, resume, jobDescription string) (*model.OptimizationResult, error) {
	text, err := c.generateWithRetry(ctx, optimizationPrompt(c.language, resume, jobDescription))
	if err != nil {
		slog.Error("ai: optimize resume failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOptimizationFailed, err)
	}
	res := ParseOptimizationResult(text, c.labels)
	return &res, nil
}

// CalculateMatchScore asks for a bare 0-100 score. It never fails; any
// problem yields the default score.
func (c *Client) CalculateMatchScore(ctx context.Context, resume, jobDescription string) int {
	text, err := c.generateWithRetry(ctx, scorePrompt(c.language, resume, jobDescription))
	if err != nil {
		slog.Warn("ai: match score failed, using default", "error", err)
		return model.DefaultMatchScore
	}
	score, ok := parseScore(strings.TrimSpace(text))
	if !ok {
		return model.DefaultMatchScore
	}
	return score
}

// generateWithRetry calls the generator with exponential backoff.
func (c *Client) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for i := 0; i < c.attempts; i++ {
		text, err := c.gen.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(text) == "" {
			err = errEmptyResponse
		}
		if err == nil {
			return text, nil
		}
		lastErr = err
		slog.Warn("ai: generate attempt failed", "attempt", i+1, "error", err)
		if i < c.attempts-1 {
			backoff := time.Duration(1<<i) * c.backoff
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", lastErr
}
