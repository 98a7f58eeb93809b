package factory

import (
	"time"

	"github.com/mossii/statusboard/internal/dependencies/mocks"
	"github.com/mossii/statusboard/internal/services/lock"
	"github.com/mossii/statusboard/internal/storage/memory"
	"github.com/mossii/statusboard/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New(mockClock)

	app := newWithDependencies(store, mockClock, lock.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
