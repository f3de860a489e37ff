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


package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/coursefinder/ai"
)

const (
	DefaultBatchSize  = 32
	DefaultWorkers    = 4
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// Encoder embeds batches of texts concurrently.
type Encoder struct {
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	retry     backoff
	progress  io.Writer
	logger    *slog.Logger
}

// Option configures an Encoder.
type Option func(*Encoder) error

// WithBatchSize sets how many texts go into one embedder call.
// Values below 1 are treated as 1.
func WithBatchSize(size int) Option {
	return func(e *Encoder) error {
		if size < 1 {
			size = 1
		}
		e.batchSize = size
		return nil
	}
}

// WithWorkers sets the worker pool size.
// Default is DefaultWorkers, with a minimum of 1.
func WithWorkers(size int) Option {
	return func(e *Encoder) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithMaxRetries sets the number of attempts per batch.
func WithMaxRetries(attempts int) Option {
	return func(e *Encoder) error {
		if attempts < 1 {
			return ErrInvalidMaxAttempts
		}
		e.retry.attempts = attempts
		return nil
	}
}

// WithRetryDelay sets the base delay for exponential backoff.
func WithRetryDelay(delay time.Duration) Option {
	return func(e *Encoder) error {
		e.retry.delay = delay
		return nil
	}
}

// WithProgress enables progress reporting to w. A nil writer disables it.
func WithProgress(w io.Writer) Option {
	return func(e *Encoder) error {
		e.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Encoder) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEncoder creates an Encoder around embedder. Call Release when done.
func NewEncoder(embedder ai.Embedder, opts ...Option) (*Encoder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	pool, err := ants.NewPool(DefaultWorkers)
	if err != nil {
		return nil, err
	}

	e := &Encoder{
		embedder:  embedder,
		pool:      pool,
		batchSize: DefaultBatchSize,
		retry:     backoff{attempts: DefaultMaxRetries, delay: DefaultRetryDelay},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}
	e.logger = e.logger.With("component", "encoder")
	e.retry.logger = e.logger

	return e, nil
}

// Encode embeds texts and returns one vector per text, in input order.
// The first batch failure cancels the remaining batches and is returned.
func (e *Encoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var tracker *ProgressTracker
	if e.progress != nil {
		tracker = NewProgressTracker(e.progress, len(texts), e.batchSize)
		tracker.Start()
	}

	results := make([][]float32, len(texts))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		cancel()
	}

	batches := 0
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		batches++

		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			vectors, err := e.encodeBatch(ctx, texts[start:end])
			if err != nil {
				fail(fmt.Errorf("batch at %d: %w", start, err))
				return
			}
			copy(results[start:end], vectors)
			if tracker != nil {
				tracker.Increment(end - start)
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		e.logger.Error("encoding failed", "texts", len(texts), "err", firstErr)
		return nil, firstErr
	}

	logArgs := []any{"texts", len(texts), "batches", batches}
	if tracker != nil {
		tracker.Finish()
		logArgs = append(logArgs, "elapsed", tracker.Elapsed())
	}
	e.logger.Debug("encoded texts", logArgs...)
	return results, nil
}

func (e *Encoder) encodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	err := e.retry.run(ctx, len(texts), func() error {
		var err error
		vectors, err = e.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("generating embeddings: %w", err)
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(texts), len(vectors))
	}
	return vectors, nil
}

// Release releases the worker pool. The encoder must not be used afterwards.
func (e *Encoder) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// EmbedTexts is a one-shot helper that creates an Encoder, encodes texts and
// releases the pool.
func EmbedTexts(ctx context.Context, embedder ai.Embedder, texts []string, opts ...Option) ([][]float32, error) {
	encoder, err := NewEncoder(embedder, opts...)
	if err != nil {
		return nil, err
	}
	defer encoder.Release()
	return encoder.Encode(ctx, texts)
}
