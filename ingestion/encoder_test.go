package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/coursefinder/ai"
	"github.com/poiesic/coursefinder/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTexts(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("course text %d", i)
	}
	return texts
}

func TestEncoder_PreservesOrder(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 16
	texts := makeTexts(100)

	vectors, err := EmbedTexts(context.Background(), embedder, texts,
		WithBatchSize(7), WithWorkers(4))
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	for i, text := range texts {
		want, _ := embedder.EmbedText(context.Background(), text)
		assert.Equal(t, want, vectors[i], "vector %d out of order", i)
	}
	// 15 batch calls plus 100 single lookups above
	assert.Equal(t, 115, embedder.CallCount())
}

func TestEncoder_EmptyInput(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	vectors, err := EmbedTexts(context.Background(), embedder, nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Equal(t, 0, embedder.CallCount())
}

func TestEncoder_NilEmbedder(t *testing.T) {
	_, err := NewEncoder(nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestEncoder_InvalidRetries(t *testing.T) {
	_, err := NewEncoder(mock.NewMockEmbedder(), WithMaxRetries(0))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestEncoder_RetriesTransientFailure(t *testing.T) {
	var attempts atomic.Int32
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if attempts.Add(1) == 1 {
			return nil, errors.New("temporary error")
		}
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{1, 0}
		}
		return out, nil
	}

	vectors, err := EmbedTexts(context.Background(), embedder, makeTexts(3),
		WithRetryDelay(time.Millisecond))
	require.NoError(t, err)
	assert.Len(t, vectors, 3)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestEncoder_PersistentFailureAborts(t *testing.T) {
	expected := errors.New("service down")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, expected
	}

	vectors, err := EmbedTexts(context.Background(), embedder, makeTexts(10),
		WithBatchSize(2), WithMaxRetries(2), WithRetryDelay(time.Millisecond))
	require.Error(t, err)
	assert.ErrorIs(t, err, expected)
	assert.Nil(t, vectors)
}

func TestEncoder_DimensionMismatchNotRetried(t *testing.T) {
	var calls atomic.Int32
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls.Add(1)
		return nil, ai.ErrDimensionMismatch
	}

	_, err := EmbedTexts(context.Background(), embedder, makeTexts(1),
		WithMaxRetries(5), WithRetryDelay(time.Millisecond))
	assert.ErrorIs(t, err, ai.ErrDimensionMismatch)
	assert.Equal(t, int32(1), calls.Load())
}

func TestEncoder_CountMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil
	}

	_, err := EmbedTexts(context.Background(), embedder, makeTexts(3), WithMaxRetries(1))
	assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
}

func TestEncoder_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EmbedTexts(ctx, mock.NewMockEmbedder(), makeTexts(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncoder_ReportsProgress(t *testing.T) {
	var buf bytes.Buffer
	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 4

	_, err := EmbedTexts(context.Background(), embedder, makeTexts(10),
		WithBatchSize(5), WithWorkers(1), WithProgress(&buf))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "10/10")
	assert.Contains(t, buf.String(), "100.0%")
}

func TestEncoder_LogsElapsedWithProgress(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := EmbedTexts(context.Background(), mock.NewMockEmbedder(), makeTexts(4),
		WithProgress(io.Discard), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "encoded texts")
	assert.Contains(t, logs.String(), "elapsed=")
}
