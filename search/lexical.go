package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/coursefinder/core"
)

// PhraseBonus is added when the whole lowercased query occurs in the
// lowercased course text.
const PhraseBonus = 0.3

// Score returns the share of distinct query words present in courseText,
// plus PhraseBonus when the query appears verbatim, capped at 1.
// A query without words scores 0.
func Score(query, courseText string) float64 {
	lowered := strings.ToLower(courseText)
	return score(tokenize(query), strings.ToLower(query), tokenize(lowered), lowered)
}

func score(queryWords map[string]struct{}, query string, textWords map[string]struct{}, text string) float64 {
	if len(queryWords) == 0 {
		return 0
	}

	common := 0
	for w := range queryWords {
		if _, ok := textWords[w]; ok {
			common++
		}
	}
	s := float64(common) / float64(len(queryWords))

	if strings.Contains(text, query) {
		s += PhraseBonus
	}
	return min(s, 1.0)
}

// LexicalMatcher ranks courses by keyword overlap. It needs no model.
type LexicalMatcher struct {
	courses []core.Course
	texts   []string
	words   []map[string]struct{}
	monitor Monitor
	logger  *slog.Logger
}

var _ Matcher = (*LexicalMatcher)(nil)

// NewLexicalMatcher prepares the lowercased text of every course.
func NewLexicalMatcher(courses []core.Course, opts ...Option) (*LexicalMatcher, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	m := &LexicalMatcher{
		courses: make([]core.Course, len(courses)),
		texts:   make([]string, len(courses)),
		words:   make([]map[string]struct{}, len(courses)),
		monitor: o.monitor,
		logger:  o.logger.With("component", "lexical-matcher"),
	}
	for i := range courses {
		m.courses[i] = courses[i].Clone()
		m.texts[i] = LexicalText(&m.courses[i])
		m.words[i] = tokenize(m.texts[i])
	}

	m.logger.Debug("lexical matcher ready", "courses", len(courses))
	return m, nil
}

// Search scores every course, keeps those above zero and returns the best
// topK. Ties keep catalog order.
func (m *LexicalMatcher) Search(ctx context.Context, query string, topK int) []core.ScoredCourse {
	m.monitor.Start(KindLexical, query, topK)

	if err := ctx.Err(); err != nil {
		m.logger.Error("error searching courses", "query", query, "err", err)
		m.monitor.Failed(query, err)
		return []core.ScoredCourse{}
	}

	results := []core.ScoredCourse{}
	if topK > 0 {
		lowered := strings.ToLower(query)
		queryWords := tokenize(lowered)
		for i := range m.courses {
			s := score(queryWords, lowered, m.words[i], m.texts[i])
			if s > 0 {
				results = append(results, core.ScoredCourse{
					Course:          m.courses[i].Clone(),
					SimilarityScore: s,
				})
			}
		}

		sort.SliceStable(results, func(a, b int) bool {
			return results[a].SimilarityScore > results[b].SimilarityScore
		})
		if len(results) > topK {
			results = results[:topK]
		}
		rankResults(results)
	}

	m.logger.Debug("lexical search complete", "query", query, "hits", len(results))
	m.monitor.Finish(query, results)
	return results
}
