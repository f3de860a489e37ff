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


package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/coursefinder/chat"
	"github.com/poiesic/coursefinder/core"
	"github.com/poiesic/coursefinder/recommend"
	"github.com/poiesic/coursefinder/search"
)

// Service is the retrieval interface the server exposes.
type Service interface {
	Search(ctx context.Context, query string, topK int) []core.ScoredCourse
	GetByID(ctx context.Context, id string) (*core.Course, bool)
	Filter(ctx context.Context, criteria search.Criteria) []core.Course
	Recommend(ctx context.Context, req recommend.Request) []core.ScoredCourse
	// Chat returns chat.ErrAssistantUnavailable when no model is configured.
	Chat(ctx context.Context, message string, profile chat.Profile) (chat.Reply, error)
}

const (
	defaultShutdownTimeout = 5 * time.Second
	maxTopK                = 100
)

// Server serves Service over HTTP.
type Server struct {
	service         Service
	engine          *gin.Engine
	allowedOrigins  []string
	defaultTopK     int
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithAllowedOrigins restricts CORS to origins. "*" allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) error {
		s.allowedOrigins = origins
		return nil
	}
}

// WithDefaultTopK sets the result count used when a request omits top_k.
func WithDefaultTopK(topK int) Option {
	return func(s *Server) error {
		if topK < 1 || topK > maxTopK {
			return errors.New("default top_k out of range")
		}
		s.defaultTopK = topK
		return nil
	}
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) error {
		s.shutdownTimeout = d
		return nil
	}
}

// New creates a server for service.
func New(service Service, opts ...Option) (*Server, error) {
	if service == nil {
		return nil, errors.New("service required")
	}

	s := &Server{
		service:         service,
		defaultTopK:     recommend.DefaultTopK,
		shutdownTimeout: defaultShutdownTimeout,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "http")
	s.engine = s.newRouter()

	return s, nil
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(s.logger))
	router.Use(corsMiddleware(s.allowedOrigins))

	router.GET("/healthcheck", healthCheck)

	api := router.Group("/api")
	{
		api.GET("/courses", s.listCourses)
		api.GET("/courses/:id", s.getCourse)
		api.GET("/search", s.search)
		api.POST("/recommendations", s.recommend)
		api.POST("/chat", s.chat)
	}

	return router
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
