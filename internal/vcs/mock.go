package vcs

import (
	"context"
	"os"
	"sync"
)

// MockClone records a single Clone invocation.
type MockClone struct {
	URL  string
	Dir  string
	Opts CloneOptions
}

// MockClient is a Client for tests. On success it materializes the target
// directory so callers see a populated checkout.
type MockClient struct {
	mu sync.Mutex

	// Err is returned by every Clone call when set.
	Err error

	// Clones records all Clone invocations.
	Clones []MockClone
}

// NewMockClient creates a new mock client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Clone(ctx context.Context, url, dir string, opts CloneOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Clones = append(m.Clones, MockClone{URL: url, Dir: dir, Opts: opts})

	if m.Err != nil {
		return m.Err
	}
	return os.MkdirAll(dir, 0755)
}

// CloneCount returns the number of recorded Clone calls.
func (m *MockClient) CloneCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Clones)
}
