package testutil

import (
	"fmt"

	"github.com/stretchr/testify/mock"
)

// MockRunConfiguration is a mock implementation of stanargs.RunConfiguration.
type MockRunConfiguration struct {
	mock.Mock
}

func (m *MockRunConfiguration) BeginCommand(idx int) []string {
	args := m.Called(idx)
	return args.Get(0).([]string)
}

// StaticPrefix is a trivial RunConfiguration returning the same tokens for
// every index, for tests that only care about what gets appended after them.
type StaticPrefix []string

func (p StaticPrefix) BeginCommand(idx int) []string {
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// IndexedPrefix yields a per-index prefix so tests can tell run commands
// apart, e.g. ["id=1"], ["id=2"], ...
type IndexedPrefix struct{}

func (IndexedPrefix) BeginCommand(idx int) []string {
	return []string{fmt.Sprintf("id=%d", idx+1)}
}
