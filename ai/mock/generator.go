package mock

import (
	"context"
	"sync"
)

// DefaultReply is returned by MockGenerator when no GenerateFunc is set.
const DefaultReply = "Here are some courses you might like."

// MockGenerator is a test double for ai.Generator.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	GenerateFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	mu             sync.Mutex
	callCount      int
	lastSystem     string
	lastUserPrompt string
}

// NewMockGenerator creates a mock generator that returns DefaultReply.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate records the prompts and returns the injected or default reply.
func (m *MockGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastSystem = systemPrompt
	m.lastUserPrompt = userPrompt
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, systemPrompt, userPrompt)
	}
	return DefaultReply, nil
}

// CallCount returns the number of Generate calls.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastPrompts returns the system and user prompts of the most recent call.
func (m *MockGenerator) LastPrompts() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSystem, m.lastUserPrompt
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastSystem = ""
	m.lastUserPrompt = ""
	m.GenerateFunc = nil
}
