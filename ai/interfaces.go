package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned by a Generator when the model produced no text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// ErrDimensionMismatch is returned by an Embedder whose vectors change length.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use, deterministic for
// identical input, and return vectors of one fixed dimensionality.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces conversational text from a language model.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate answers userPrompt under the instructions in systemPrompt.
	// Returns ErrEmptyResponse when the model returns no text.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
