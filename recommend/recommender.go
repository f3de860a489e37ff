package recommend

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/coursefinder/core"
	"github.com/poiesic/coursefinder/search"
)

// DefaultTopK is the number of recommendations callers use when none is given.
const DefaultTopK = 5

// overFetch multiplies topK when querying the matcher so that enough
// candidates survive the skill-level filter.
const overFetch = 2

// ErrMatcherRequired is returned when a matcher is not provided.
var ErrMatcherRequired = errors.New("matcher required")

// Request describes a learner.
type Request struct {
	Interests  string `json:"interests"`
	Background string `json:"background"`
	SkillLevel string `json:"skill_level"`
	// Message stands in for Interests when Interests is empty, typically
	// the learner's latest chat message.
	Message string `json:"message,omitempty"`
	TopK    int    `json:"top_k"`
}

// Query joins interests (or the message), background and skill level with
// single spaces, skipping empty parts.
func (r Request) Query() string {
	interests := r.Interests
	if strings.TrimSpace(interests) == "" {
		interests = r.Message
	}

	parts := make([]string, 0, 3)
	for _, part := range []string{interests, r.Background, r.SkillLevel} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// Recommender produces recommendations from a matcher.
type Recommender struct {
	matcher search.Matcher
	logger  *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRecommender creates a recommender that queries matcher.
func NewRecommender(matcher search.Matcher, opts ...Option) (*Recommender, error) {
	if matcher == nil {
		return nil, ErrMatcherRequired
	}

	r := &Recommender{
		matcher: matcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "recommender")

	return r, nil
}

// Recommend returns at most req.TopK courses ranked 1..N. When SkillLevel
// names a difficulty, courses of any other difficulty are dropped however
// well they match. Fewer than TopK results are returned rather than padding.
func (r *Recommender) Recommend(ctx context.Context, req Request) []core.ScoredCourse {
	if req.TopK <= 0 {
		return []core.ScoredCourse{}
	}

	query := req.Query()
	candidates := r.matcher.Search(ctx, query, req.TopK*overFetch)

	results := candidates
	if level, ok := core.ParseDifficulty(req.SkillLevel); ok {
		results = make([]core.ScoredCourse, 0, len(candidates))
		for _, c := range candidates {
			if c.HasDifficulty(string(level)) {
				results = append(results, c)
			}
		}
	}

	if len(results) > req.TopK {
		results = results[:req.TopK]
	}
	for i := range results {
		results[i].Rank = i + 1
	}

	r.logger.Debug("recommendations ready",
		"query", query,
		"candidates", len(candidates),
		"results", len(results),
		"ids", core.CourseIDs(results))
	return results
}
