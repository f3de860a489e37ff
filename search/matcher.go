package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/coursefinder/ai"
	"github.com/poiesic/coursefinder/core"
	"github.com/poiesic/coursefinder/ingestion"
)

// Matcher maps a query to courses ranked by relevance.
// Search never fails: a query that cannot be answered yields an empty slice.
// Results hold at most topK entries with ranks 1..N and are owned by the
// caller.
type Matcher interface {
	Search(ctx context.Context, query string, topK int) []core.ScoredCourse
}

// Kind names a Matcher implementation.
type Kind string

const (
	KindLexical   Kind = "lexical"
	KindEmbedding Kind = "embedding"
)

// ParseKind resolves a matcher name, ignoring case.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindLexical:
		return KindLexical, nil
	case KindEmbedding:
		return KindEmbedding, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMatcher, s)
}

type options struct {
	logger         *slog.Logger
	monitor        Monitor
	encoderOptions []ingestion.Option
}

// Option configures a matcher.
type Option func(*options) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithMonitor installs hooks that observe every query.
func WithMonitor(monitor Monitor) Option {
	return func(o *options) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		o.monitor = monitor
		return nil
	}
}

// WithEncoderOptions tunes how the embedding matcher encodes the catalog.
// Ignored by the lexical matcher.
func WithEncoderOptions(opts ...ingestion.Option) Option {
	return func(o *options) error {
		o.encoderOptions = append(o.encoderOptions, opts...)
		return nil
	}
}

func applyOptions(opts []Option) (*options, error) {
	o := &options{
		logger:  slog.Default(),
		monitor: &noopMonitor{},
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// NewMatcher builds the matcher named by kind over courses. The embedder is
// only consulted for KindEmbedding.
func NewMatcher(ctx context.Context, kind Kind, courses []core.Course, embedder ai.Embedder, opts ...Option) (Matcher, error) {
	switch kind {
	case KindLexical:
		return NewLexicalMatcher(courses, opts...)
	case KindEmbedding:
		return NewEmbeddingMatcher(ctx, courses, embedder, opts...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMatcher, kind)
}

// rankResults assigns ranks 1..N in slice order.
func rankResults(results []core.ScoredCourse) {
	for i := range results {
		results[i].Rank = i + 1
	}
}
