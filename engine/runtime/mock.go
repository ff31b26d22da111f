package runtime

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a mock implementation of Runner
type MockRunner struct {
	mock.Mock
}

func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

func (m *MockRunner) Run(ctx context.Context, argv []string, stdio Stdio) error {
	args := m.Called(ctx, argv, stdio)
	return args.Error(0)
}

func (m *MockRunner) Output(ctx context.Context, argv []string) (string, error) {
	args := m.Called(ctx, argv)
	return args.String(0), args.Error(1)
}

func (m *MockRunner) LookPath(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

// MockEditor is a mock implementation of Editor
type MockEditor struct {
	mock.Mock
}

func (m *MockEditor) Edit(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// MockPrompter is a mock implementation of Prompter
type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Confirm(title, description string) (bool, error) {
	args := m.Called(title, description)
	return args.Bool(0), args.Error(1)
}
