package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/cinecheck/llm"
	"github.com/BaSui01/cinecheck/structured"
)

// Result is the outcome of a completed chain run. Both structures are
// present, or Run returned an error and no Result exists.
type Result struct {
	TraceID        string            `json:"trace_id"`
	Title          string            `json:"title"`
	Review         *MovieReview      `json:"review"`
	ReviewRaw      string            `json:"-"`
	Suitability    *MovieSuitability `json:"suitability"`
	SuitabilityRaw string            `json:"-"`
}

// Chain runs the two generation calls in order: review first, then the
// suitability assessment built from the validated review. The second call
// depends on the first's output, so the steps cannot be reordered or
// parallelized.
type Chain struct {
	provider llm.Provider
	logger   *zap.Logger

	maxTokens   int
	temperature float32
}

// Option configures a Chain.
type Option func(*Chain)

// WithMaxTokens caps the completion length of each generation call.
func WithMaxTokens(n int) Option {
	return func(c *Chain) { c.maxTokens = n }
}

// WithTemperature sets the sampling temperature of each generation call.
func WithTemperature(t float32) Option {
	return func(c *Chain) { c.temperature = t }
}

// NewChain creates a chain over the given provider.
func NewChain(provider llm.Provider, logger *zap.Logger, opts ...Option) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Chain{provider: provider, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the chain for a movie title. Errors are surfaced as-is:
// provider failures keep their *llm.Error, schema failures their
// *structured.ValidationErrors. There are no retries and no partial results.
func (c *Chain) Run(ctx context.Context, title string) (*Result, error) {
	traceID := uuid.New().String()
	log := c.logger.With(zap.String("trace_id", traceID), zap.String("title", title))

	reviewOut, err := structured.NewOutput[MovieReview](c.provider)
	if err != nil {
		return nil, err
	}
	suitabilityOut, err := structured.NewOutput[MovieSuitability](c.provider)
	if err != nil {
		return nil, err
	}

	log.Info("requesting structured movie review")
	review, reviewRaw, err := reviewOut.GenerateWithRaw(ctx, c.request(traceID, ReviewPrompt(title)))
	if err != nil {
		return nil, fmt.Errorf("movie review step: %w", err)
	}
	review.normalize()

	reviewJSON, err := review.CanonicalJSON()
	if err != nil {
		return nil, err
	}
	log.Info("movie review validated", zap.Int("rating", review.Rating), zap.String("genre", review.Genre))

	log.Info("requesting suitability assessment")
	suitability, suitabilityRaw, err := suitabilityOut.GenerateWithRaw(ctx, c.request(traceID, SuitabilityPrompt(reviewJSON)))
	if err != nil {
		return nil, fmt.Errorf("suitability step: %w", err)
	}
	suitability.normalize()

	log.Info("suitability assessment validated",
		zap.Bool("suitable_for_under_10", suitability.SuitableForUnder10),
		zap.Int("suggested_min_age", suitability.SuggestedMinAge),
	)

	return &Result{
		TraceID:        traceID,
		Title:          title,
		Review:         review,
		ReviewRaw:      reviewRaw,
		Suitability:    suitability,
		SuitabilityRaw: suitabilityRaw,
	}, nil
}

func (c *Chain) request(traceID, prompt string) *llm.ChatRequest {
	return &llm.ChatRequest{
		TraceID:     traceID,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
}
