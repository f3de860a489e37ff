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


package coursefinder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/coursefinder/ai"
	"github.com/poiesic/coursefinder/ai/openai"
	"github.com/poiesic/coursefinder/chat"
	"github.com/poiesic/coursefinder/core"
	"github.com/poiesic/coursefinder/ingestion"
	"github.com/poiesic/coursefinder/recommend"
	"github.com/poiesic/coursefinder/search"
	"github.com/poiesic/coursefinder/storage"
	"github.com/poiesic/coursefinder/storage/badger"
)

// Finder owns a loaded catalog and the services built on top of it.
type Finder struct {
	repo        storage.CourseRepository
	kind        search.Kind
	matcher     search.Matcher
	recommender *recommend.Recommender
	assistant   *chat.Assistant
	fingerprint string
	provider    ai.AIProvider
	logger      *slog.Logger
}

// Option configures a Finder.
type Option func(*finderOptions)

type finderOptions struct {
	aiConfig       *ai.Config
	provider       ai.AIProvider
	kind           search.Kind
	monitor        search.Monitor
	encoderOptions []ingestion.Option
	chatTopK       int
	logger         *slog.Logger
}

// WithAIConfig creates an OpenAI-compatible provider from config.
// Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) Option {
	return func(o *finderOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a ready provider. The Finder closes it on Close.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *finderOptions) {
		o.provider = provider
	}
}

// WithMatcherKind selects the search strategy. Defaults to lexical.
func WithMatcherKind(kind search.Kind) Option {
	return func(o *finderOptions) {
		o.kind = kind
	}
}

// WithSearchMonitor observes every search the matcher runs.
func WithSearchMonitor(monitor search.Monitor) Option {
	return func(o *finderOptions) {
		o.monitor = monitor
	}
}

// WithEncoderOptions tunes catalog encoding for the embedding matcher.
func WithEncoderOptions(opts ...ingestion.Option) Option {
	return func(o *finderOptions) {
		o.encoderOptions = append(o.encoderOptions, opts...)
	}
}

// WithChatTopK sets how many courses the assistant retrieves per turn.
func WithChatTopK(topK int) Option {
	return func(o *finderOptions) {
		o.chatTopK = topK
	}
}

// WithLogger sets the logger handed to every component.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *finderOptions) {
		o.logger = logger
	}
}

// New loads the catalog at dataPath and builds a Finder over it.
func New(ctx context.Context, dataPath string, opts ...Option) (*Finder, error) {
	courses, err := ingestion.LoadCourses(dataPath)
	if err != nil {
		return nil, err
	}
	return NewFromCourses(ctx, courses, opts...)
}

// NewFromCourses builds a Finder over an already decoded catalog.
func NewFromCourses(ctx context.Context, courses []core.Course, opts ...Option) (*Finder, error) {
	options := &finderOptions{
		kind:   search.KindLexical,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	logger := options.logger.With("component", "finder")

	if err := core.ValidateCourses(courses); err != nil {
		return nil, err
	}

	repo, err := badger.NewMemoryRepository()
	if err != nil {
		return nil, err
	}
	if err := repo.AddCourses(ctx, courses...); err != nil {
		repo.Close()
		return nil, err
	}
	if count, err := repo.CountCourses(ctx); err != nil || count != len(courses) {
		repo.Close()
		if err == nil {
			err = fmt.Errorf("%w: stored %d of %d", storage.ErrIncompleteLoad, count, len(courses))
		}
		return nil, err
	}
	stored, err := repo.GetCourses(ctx)
	if err != nil {
		repo.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil && options.aiConfig != nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repo.Close()
			return nil, err
		}
	}
	cleanup := func() {
		if provider != nil {
			if err := provider.Close(); err != nil {
				logger.Error("error closing AI provider", "err", err)
			}
		}
		if err := repo.Close(); err != nil {
			logger.Error("error closing course repository", "err", err)
		}
	}

	var embedder ai.Embedder
	if provider != nil {
		embedder = provider.Embedder()
	}
	searchOpts := []search.Option{
		search.WithLogger(options.logger),
		search.WithEncoderOptions(options.encoderOptions...),
	}
	if options.monitor != nil {
		searchOpts = append(searchOpts, search.WithMonitor(options.monitor))
	}
	matcher, err := search.NewMatcher(ctx, options.kind, stored, embedder, searchOpts...)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("building %s matcher: %w", options.kind, err)
	}

	recommender, err := recommend.NewRecommender(matcher, recommend.WithLogger(options.logger))
	if err != nil {
		cleanup()
		return nil, err
	}

	var assistant *chat.Assistant
	if provider != nil {
		chatOpts := []chat.Option{chat.WithLogger(options.logger)}
		if options.chatTopK > 0 {
			chatOpts = append(chatOpts, chat.WithTopK(options.chatTopK))
		}
		assistant, err = chat.NewAssistant(recommender, provider.Generator(), chatOpts...)
		if err != nil {
			cleanup()
			return nil, err
		}
	}

	fingerprint := core.Fingerprint(stored)
	logArgs := []any{"courses", len(stored), "fingerprint", fingerprint,
		"matcher", options.kind, "chat", assistant != nil}
	if em, ok := matcher.(*search.EmbeddingMatcher); ok {
		logArgs = append(logArgs, "dimension", em.Dimension())
	}
	logger.Info("catalog loaded", logArgs...)
	return &Finder{
		fingerprint: fingerprint,
		repo:        repo,
		kind:        options.kind,
		matcher:     matcher,
		recommender: recommender,
		assistant:   assistant,
		provider:    provider,
		logger:      logger,
	}, nil
}

// Close releases the AI provider and the course store. The Finder must not
// be used afterwards.
func (f *Finder) Close() error {
	if f.provider != nil {
		if err := f.provider.Close(); err != nil {
			f.logger.Error("error closing AI provider", "err", err)
		}
	}
	if err := f.repo.Close(); err != nil {
		f.logger.Error("error closing course repository", "err", err)
		return err
	}
	return nil
}

// MatcherKind reports which strategy backs Search.
func (f *Finder) MatcherKind() search.Kind {
	return f.kind
}

// Fingerprint identifies the loaded catalog. See core.Fingerprint.
func (f *Finder) Fingerprint() string {
	return f.fingerprint
}

// HasAssistant reports whether Chat is available.
func (f *Finder) HasAssistant() bool {
	return f.assistant != nil
}

// Courses returns the catalog in load order.
func (f *Finder) Courses(ctx context.Context) ([]core.Course, error) {
	return f.repo.GetCourses(ctx)
}

// Search returns up to topK courses ranked by relevance to query.
func (f *Finder) Search(ctx context.Context, query string, topK int) []core.ScoredCourse {
	return f.matcher.Search(ctx, query, topK)
}

// GetByID returns the course with the given id. Storage failures are
// logged and reported as absent.
func (f *Finder) GetByID(ctx context.Context, id string) (*core.Course, bool) {
	course, err := f.repo.GetCourse(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			f.logger.Error("course lookup failed", "id", id, "err", err)
		}
		return nil, false
	}
	return course, true
}

// Filter returns the courses matching criteria, in load order.
// Storage failures are logged and yield an empty list.
func (f *Finder) Filter(ctx context.Context, criteria search.Criteria) []core.Course {
	courses, err := f.repo.GetCourses(ctx)
	if err != nil {
		f.logger.Error("listing courses failed", "err", err)
		return []core.Course{}
	}
	return search.Filter(courses, criteria)
}

// Recommend ranks courses for a learner profile.
func (f *Finder) Recommend(ctx context.Context, req recommend.Request) []core.ScoredCourse {
	return f.recommender.Recommend(ctx, req)
}

// Chat answers one conversational turn. Returns chat.ErrAssistantUnavailable
// when no AI provider was configured.
func (f *Finder) Chat(ctx context.Context, message string, profile chat.Profile) (chat.Reply, error) {
	if f.assistant == nil {
		return chat.Reply{}, chat.ErrAssistantUnavailable
	}
	return f.assistant.Converse(ctx, message, profile), nil
}
