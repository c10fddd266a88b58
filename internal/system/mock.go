package system

import (
	"context"
	"fmt"
	"sync"
)

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []interface{}
}

// MockExecutor is a mock implementation of CommandExecutor for testing
type MockExecutor struct {
	mu sync.Mutex

	// Outputs maps command names to predefined combined output
	Outputs map[string][]byte

	// Errors allows injecting errors for specific command names
	Errors map[string]error

	// NextPid is returned by StartDetached (and then incremented)
	NextPid int

	// CallLog records all method calls for verification
	CallLog []MockCall
}

// NewMockExecutor creates a new mock executor
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Outputs: make(map[string][]byte),
		Errors:  make(map[string]error),
		NextPid: 10000,
	}
}

func (m *MockExecutor) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific command name
func (m *MockExecutor) SetError(command string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[command] = err
}

// SetOutput sets the combined output for a specific command name
func (m *MockExecutor) SetOutput(command string, output []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outputs[command] = output
}

// Calls returns the recorded calls for a method name
func (m *MockExecutor) Calls(method string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var calls []MockCall
	for _, c := range m.CallLog {
		if c.Method == method {
			calls = append(calls, c)
		}
	}
	return calls
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Execute", name, args)

	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	return m.Outputs[name], nil
}

func (m *MockExecutor) ExecuteWithStdin(ctx context.Context, stdin string, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ExecuteWithStdin", stdin, name, args)

	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	return m.Outputs[name], nil
}

func (m *MockExecutor) StartDetached(env []string, name string, args ...string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("StartDetached", env, name, args)

	if err, ok := m.Errors[name]; ok {
		return 0, fmt.Errorf("start %s: %w", name, err)
	}
	pid := m.NextPid
	m.NextPid++
	return pid, nil
}
