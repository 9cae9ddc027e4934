package loginguard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestGuard(max int, window time.Duration) (*Guard, *time.Time) {
	g := New(max, window)
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return current }
	return g, &current
}

func TestAllowedUntilLimit(t *testing.T) {
	g, _ := newTestGuard(3, 15*time.Minute)

	for i := 0; i < 2; i++ {
		assert.True(t, g.Allowed("ana@clinic.test"))
		g.Fail("ana@clinic.test")
	}
	assert.True(t, g.Allowed("ana@clinic.test"), "still under the limit")

	g.Fail("ana@clinic.test")
	assert.False(t, g.Allowed("ana@clinic.test"), "third failure locks the key")
}

func TestLockExpiresAfterWindow(t *testing.T) {
	g, clock := newTestGuard(2, 15*time.Minute)

	g.Fail("ana@clinic.test")
	g.Fail("ana@clinic.test")
	assert.False(t, g.Allowed("ana@clinic.test"))

	*clock = clock.Add(16 * time.Minute)
	assert.True(t, g.Allowed("ana@clinic.test"))
}

func TestResetClearsFailures(t *testing.T) {
	g, _ := newTestGuard(2, 15*time.Minute)

	g.Fail("ana@clinic.test")
	g.Fail("ana@clinic.test")
	assert.False(t, g.Allowed("ana@clinic.test"))

	g.Reset("ana@clinic.test")
	assert.True(t, g.Allowed("ana@clinic.test"))
}

func TestKeysAreIndependent(t *testing.T) {
	g, _ := newTestGuard(1, 15*time.Minute)

	g.Fail("ana@clinic.test")
	assert.False(t, g.Allowed("ana@clinic.test"))
	assert.True(t, g.Allowed("luis@clinic.test"))
}

func TestStaleFailuresExpire(t *testing.T) {
	g, clock := newTestGuard(2, 15*time.Minute)

	g.Fail("ana@clinic.test")
	*clock = clock.Add(20 * time.Minute)
	g.Fail("ana@clinic.test")
	assert.True(t, g.Allowed("ana@clinic.test"), "old failure fell out of the window")
}
