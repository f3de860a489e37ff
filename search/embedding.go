// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/coursefinder/ai"
	"github.com/poiesic/coursefinder/core"
	"github.com/poiesic/coursefinder/index"
	"github.com/poiesic/coursefinder/ingestion"
)

// EmbeddingMatcher ranks courses by cosine similarity between the query
// embedding and the course embeddings computed at construction.
type EmbeddingMatcher struct {
	courses  []core.Course
	embedder ai.Embedder
	index    *index.Flat
	monitor  Monitor
	logger   *slog.Logger
}

var _ Matcher = (*EmbeddingMatcher)(nil)

// NewEmbeddingMatcher encodes every course with embedder and builds the
// index. Vector i belongs to course i. Any failure is returned and no
// matcher is produced.
func NewEmbeddingMatcher(ctx context.Context, courses []core.Course, embedder ai.Embedder, opts ...Option) (*EmbeddingMatcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	m := &EmbeddingMatcher{
		courses:  make([]core.Course, len(courses)),
		embedder: embedder,
		monitor:  o.monitor,
		logger:   o.logger.With("component", "embedding-matcher"),
	}
	texts := make([]string, len(courses))
	for i := range courses {
		m.courses[i] = courses[i].Clone()
		texts[i] = CourseText(&m.courses[i])
	}

	if len(courses) == 0 {
		m.logger.Warn("no courses to index")
		return m, nil
	}

	encoderOpts := append([]ingestion.Option{ingestion.WithLogger(o.logger)}, o.encoderOptions...)
	vectors, err := ingestion.EmbedTexts(ctx, embedder, texts, encoderOpts...)
	if err != nil {
		m.logger.Error("error creating course embeddings", "err", err)
		return nil, fmt.Errorf("encoding courses: %w", err)
	}

	idx, err := index.NewFlat(len(vectors[0]))
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	normalized := make([][]float32, len(vectors))
	for i, v := range vectors {
		normalized[i] = index.NormalizeVector(v)
	}
	if err := idx.Add(normalized...); err != nil {
		m.logger.Error("error building index", "err", err)
		return nil, fmt.Errorf("building index: %w", err)
	}
	if idx.Len() != len(m.courses) {
		return nil, fmt.Errorf("%w: %d vectors for %d courses", ErrIndexSizeMismatch, idx.Len(), len(m.courses))
	}
	m.index = idx

	m.logger.Info("built embedding index", "courses", idx.Len(), "dimension", idx.Dim())
	return m, nil
}

// Dimension returns the embedding size, or 0 for an empty catalog.
func (m *EmbeddingMatcher) Dimension() int {
	if m.index == nil {
		return 0
	}
	return m.index.Dim()
}

// Search embeds the query and returns the topK most similar courses.
// Errors are logged and reported to the monitor; an empty slice is returned.
func (m *EmbeddingMatcher) Search(ctx context.Context, query string, topK int) []core.ScoredCourse {
	m.monitor.Start(KindEmbedding, query, topK)

	results, err := m.search(ctx, query, topK)
	if err != nil {
		m.logger.Error("error searching courses", "query", query, "err", err)
		m.monitor.Failed(query, err)
		return []core.ScoredCourse{}
	}

	m.logger.Debug("embedding search complete", "query", query, "hits", len(results))
	m.monitor.Finish(query, results)
	return results
}

func (m *EmbeddingMatcher) search(ctx context.Context, query string, topK int) ([]core.ScoredCourse, error) {
	if topK <= 0 || m.index == nil {
		return []core.ScoredCourse{}, nil
	}

	embedding, err := m.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	scores, positions, err := m.index.Search(index.NormalizeVector(embedding), topK)
	if err != nil {
		return nil, err
	}

	results := make([]core.ScoredCourse, 0, len(positions))
	for i, pos := range positions {
		if pos == index.NoMatch || pos < 0 || pos >= len(m.courses) {
			continue
		}
		results = append(results, core.ScoredCourse{
			Course:          m.courses[pos].Clone(),
			SimilarityScore: float64(scores[i]),
			Rank:            len(results) + 1,
		})
	}
	return results, nil
}
