// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Generator,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embeddings, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Vectors that overlap when texts share words
//	embedder := mock.NewKeywordEmbedder(64)
//
//	// Custom behavior injection
//	generator := mock.NewMockGenerator()
//	generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
//	    return "Try the Python course.", nil
//	}
//
//	// Check call counts
//	count := generator.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockGenerator: Echoes a fixed reply and records the prompts it received
//   - MockProvider: Aggregates mock embedder and generator
package mock
