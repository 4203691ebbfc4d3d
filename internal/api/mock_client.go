package api

import (
	"context"
	"sync"

	"github.com/storefront/storechat/internal/models"
)

// MockClient is a mock implementation of BackendClient for testing
type MockClient struct {
	// ChatFunc, when set, replaces ChatVal/ChatErr
	ChatFunc func(ctx context.Context, question string) (models.ChatResponse, error)
	ChatVal  models.ChatResponse
	ChatErr  error
	PingVal  models.PingResponse
	PingErr  error
	URL      string

	mu           sync.Mutex
	chatCalls    int
	pingCalls    int
	lastQuestion string
	closed       bool
}

// Ensure MockClient implements BackendClient
var _ BackendClient = (*MockClient)(nil)

func (m *MockClient) Chat(ctx context.Context, question string) (models.ChatResponse, error) {
	m.mu.Lock()
	m.chatCalls++
	m.lastQuestion = question
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, question)
	}
	return m.ChatVal, m.ChatErr
}

func (m *MockClient) Ping(ctx context.Context) (models.PingResponse, error) {
	m.mu.Lock()
	m.pingCalls++
	m.mu.Unlock()
	return m.PingVal, m.PingErr
}

func (m *MockClient) BaseURL() string {
	if m.URL == "" {
		return models.DefaultBackendURL
	}
	return m.URL
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *MockClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// ChatCalls returns how many times Chat was called
func (m *MockClient) ChatCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatCalls
}

// PingCalls returns how many times Ping was called
func (m *MockClient) PingCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pingCalls
}

// LastQuestion returns the question of the most recent Chat call
func (m *MockClient) LastQuestion() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastQuestion
}
