package api

import (
	"context"
	"sync"

	"github.com/diogo/chatwidget/internal/models"
)

// MockClient is a mock implementation of ChatClientInterface for testing
type MockClient struct {
	// Mock return values
	SendText  string
	SendErr   error
	HealthErr error
	BaseURL   string

	// SendFunc, when set, replaces the canned SendText/SendErr reply
	SendFunc func(ctx context.Context, requestID, message string) (*models.Reply, error)

	// Call counters/recorders
	mu          sync.Mutex
	SendCalls   int
	LastMessage string
	LastID      string
	CloseCalled bool
}

// Ensure MockClient implements ChatClientInterface
var _ ChatClientInterface = (*MockClient)(nil)

func (m *MockClient) Send(ctx context.Context, requestID, message string) (*models.Reply, error) {
	m.mu.Lock()
	m.SendCalls++
	m.LastMessage = message
	m.LastID = requestID
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, requestID, message)
	}
	if m.SendErr != nil {
		return nil, m.SendErr
	}
	return &models.Reply{RequestID: requestID, Text: m.SendText}, nil
}

func (m *MockClient) Health(ctx context.Context) error {
	return m.HealthErr
}

func (m *MockClient) Endpoint() string {
	if m.BaseURL == "" {
		return models.DefaultEndpoint
	}
	return m.BaseURL
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// Calls returns the number of Send calls so far
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SendCalls
}
