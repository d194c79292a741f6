// File: internal/mocks/mocks.go
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/xkilldash9x/numo/internal/config"
	"github.com/xkilldash9x/numo/internal/reporting"
	"github.com/xkilldash9x/numo/internal/scoring"
)

// MockConfig mocks the config.Interface.
type MockConfig struct {
	mock.Mock
}

var _ config.Interface = (*MockConfig)(nil)

// --- Getters ---

func (m *MockConfig) Logger() config.LoggerConfig {
	args := m.Called()
	return args.Get(0).(config.LoggerConfig)
}

func (m *MockConfig) Scoring() config.ScoringConfig {
	args := m.Called()
	return args.Get(0).(config.ScoringConfig)
}

func (m *MockConfig) Report() config.ReportConfig {
	args := m.Called()
	return args.Get(0).(config.ReportConfig)
}

// --- Setters ---

func (m *MockConfig) SetScoringCiphers(s string) { m.Called(s) }
func (m *MockConfig) SetScoringWorkers(n int)    { m.Called(n) }
func (m *MockConfig) SetReportFormat(f string)   { m.Called(f) }

// MockReporter mocks reporting.Reporter.
type MockReporter struct {
	mock.Mock
}

var _ reporting.Reporter = (*MockReporter)(nil)

func (m *MockReporter) Write(result scoring.Result) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockReporter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockReporter) Abort() error {
	args := m.Called()
	return args.Error(0)
}
