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


package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/coursefinder/ai"
	"github.com/poiesic/coursefinder/core"
	"github.com/poiesic/coursefinder/recommend"
)

const (
	// ApologyMessage is returned when the model produces no text.
	ApologyMessage = "I apologize, but I'm having trouble generating a response right now. Please try again."

	errorMessageFormat = "I encountered an error while processing your request: %v. Please try again or contact support if the issue persists."
)

var (
	// ErrRecommenderRequired is returned when a recommender is not provided.
	ErrRecommenderRequired = errors.New("recommender required")

	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrAssistantUnavailable is returned by callers that were built
	// without a language model.
	ErrAssistantUnavailable = errors.New("chat assistant is not configured")
)

// Recommender supplies the courses an answer is grounded on.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) []core.ScoredCourse
}

// Reply is the assistant's answer and the courses it was given.
type Reply struct {
	Text    string              `json:"text"`
	Courses []core.ScoredCourse `json:"courses"`
}

// Assistant answers learner messages with course recommendations.
type Assistant struct {
	recommender Recommender
	generator   ai.Generator
	topK        int
	logger      *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant) error

// WithTopK sets how many courses are placed in the model context.
func WithTopK(topK int) Option {
	return func(a *Assistant) error {
		if topK < 1 {
			return fmt.Errorf("topK must be positive, got %d", topK)
		}
		a.topK = topK
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAssistant creates an assistant that grounds generator replies on
// recommender results.
func NewAssistant(recommender Recommender, generator ai.Generator, opts ...Option) (*Assistant, error) {
	if recommender == nil {
		return nil, ErrRecommenderRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	a := &Assistant{
		recommender: recommender,
		generator:   generator,
		topK:        recommend.DefaultTopK,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	a.logger = a.logger.With("component", "assistant")

	return a, nil
}

// Converse recommends courses for the learner, asks the model to explain
// them and returns its answer with the courses used. A model failure is
// reported in the reply text.
func (a *Assistant) Converse(ctx context.Context, message string, profile Profile) Reply {
	courses := a.recommender.Recommend(ctx, recommend.Request{
		Interests:  profile.Interests,
		Background: profile.Background,
		SkillLevel: profile.SkillLevel,
		Message:    message,
		TopK:       a.topK,
	})

	userPrompt := buildUserPrompt(message, profile, BuildContext(courses))
	text, err := a.generator.Generate(ctx, SystemPrompt, userPrompt)
	switch {
	case errors.Is(err, ai.ErrEmptyResponse):
		a.logger.Warn("model returned no text")
		text = ApologyMessage
	case err != nil:
		a.logger.Error("error generating response", "err", err)
		text = fmt.Sprintf(errorMessageFormat, err)
	case text == "":
		text = ApologyMessage
	}

	return Reply{Text: text, Courses: courses}
}
