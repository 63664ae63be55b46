package services

import (
	"context"
	"sync"

	"github.com/lexiquest/lexiquest/pkg/chat"
)

// MockLLM is a mock implementation of LLMService for testing.
type MockLLM struct {
	InitModelFunc func(ctx context.Context, modelName string) error
	ChatFunc      func(ctx context.Context, messages []chat.Message) (*chat.Response, error)

	// Track calls for testing
	InitModelCalls []string
	ChatCalls      [][]chat.Message

	mu sync.Mutex // protects all fields above
}

func NewMockLLM() *MockLLM {
	return &MockLLM{
		InitModelCalls: make([]string, 0),
		ChatCalls:      make([][]chat.Message, 0),
	}
}

// InitModel mocks model initialization.
func (m *MockLLM) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)
	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

// Chat mocks completion generation.
func (m *MockLLM) Chat(ctx context.Context, messages []chat.Message) (*chat.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatCalls = append(m.ChatCalls, messages)
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}
	return &chat.Response{Message: "Mock response"}, nil
}

// SetChatError sets up the mock to return an error on Chat.
func (m *MockLLM) SetChatError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, messages []chat.Message) (*chat.Response, error) {
		return nil, err
	}
}

// SetChatReply sets up the mock to return a fixed reply on Chat.
func (m *MockLLM) SetChatReply(reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, messages []chat.Message) (*chat.Response, error) {
		return &chat.Response{Message: reply}, nil
	}
}

// CallCount returns the number of Chat calls made.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ChatCalls)
}

// Reset clears all call tracking.
func (m *MockLLM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = make([]string, 0)
	m.ChatCalls = make([][]chat.Message, 0)
}
