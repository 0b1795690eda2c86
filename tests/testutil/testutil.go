// Package testutil holds helpers shared by the integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/erp/saleproject/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewTestUUID returns a UUID derived from seed, stable across runs.
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
}

// TestCompanyID is the company most tests run under.
func TestCompanyID() uuid.UUID {
	return NewTestUUID("test-company")
}

// TestUserID is the user recorded as creator in tests.
func TestUserID() uuid.UUID {
	return NewTestUUID("test-user")
}

// SyncConfig is the sync section with the catalog defaults.
func SyncConfig() config.SyncConfig {
	return config.SyncConfig{
		HourUoM:      "H",
		SecondUoM:    "S",
		TimeCategory: "time",
	}
}

// ContextWithTimeout returns a context cancelled when the test ends or timeout elapses.
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// WaitForCondition polls condition until it holds or timeout elapses.
func WaitForCondition(t *testing.T, condition func() bool, timeout, interval time.Duration) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(interval)
	}
	return condition()
}

// AssertEventually fails the test when condition does not hold within timeout.
func AssertEventually(t *testing.T, condition func() bool, timeout time.Duration, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, WaitForCondition(t, condition, timeout, 10*time.Millisecond), msgAndArgs...)
}

// RequireEventually stops the test when condition does not hold within timeout.
func RequireEventually(t *testing.T, condition func() bool, timeout time.Duration, msgAndArgs ...interface{}) {
	t.Helper()
	require.True(t, WaitForCondition(t, condition, timeout, 10*time.Millisecond), msgAndArgs...)
}
