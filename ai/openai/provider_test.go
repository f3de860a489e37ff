package openai

import (
	"context"
	"testing"

	"github.com/poiesic/coursefinder/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Constructing clients performs no network I/O, so these run offline.

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(ai.NewConfig(ai.WithHost("http://localhost:11434")))
	require.NoError(t, err)
	defer provider.Close()

	assert.NotNil(t, provider.Embedder())
	assert.NotNil(t, provider.Generator())
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	_, err := NewProvider(ai.NewConfig(ai.WithEmbeddingModel("")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EmbeddingModel")
}

func TestNewGenerator_CarriesSamplingSettings(t *testing.T) {
	gen, err := newGenerator(ai.NewConfig(ai.WithTemperature(0.3), ai.WithMaxTokens(64)))
	require.NoError(t, err)
	assert.Equal(t, 0.3, gen.temperature)
	assert.Equal(t, 64, gen.maxTokens)
}

func TestProvider_CloseIsIdempotent(t *testing.T) {
	provider, err := NewProvider(ai.DefaultConfig())
	require.NoError(t, err)

	assert.NoError(t, provider.Close())
	assert.NoError(t, provider.Close())
}

type fakeEmbeddings struct {
	docs  [][]float32
	query []float32
}

func (f *fakeEmbeddings) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return f.docs, nil
}

func (f *fakeEmbeddings) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return f.query, nil
}

func TestEmbedder_EnforcesShape(t *testing.T) {
	fake := &fakeEmbeddings{
		docs:  [][]float32{{1, 0, 0}, {0, 1, 0}},
		query: []float32{0, 0, 1},
	}
	e, err := newEmbedder(ai.DefaultConfig())
	require.NoError(t, err)
	e.embedder = fake
	ctx := context.Background()

	vectors, err := e.EmbedTexts(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, 3, e.Dimension())

	_, err = e.EmbedText(ctx, "q")
	require.NoError(t, err)

	t.Run("count mismatch", func(t *testing.T) {
		_, err := e.EmbedTexts(ctx, []string{"a", "b", "c"})
		assert.Error(t, err)
	})

	t.Run("dimension change", func(t *testing.T) {
		fake.query = []float32{1, 0}
		_, err := e.EmbedText(ctx, "q")
		assert.ErrorIs(t, err, ai.ErrDimensionMismatch)
	})

	t.Run("empty vector", func(t *testing.T) {
		fake.query = []float32{}
		_, err := e.EmbedText(ctx, "q")
		assert.ErrorIs(t, err, ai.ErrDimensionMismatch)
	})
}
