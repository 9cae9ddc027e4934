// Package loginguard throttles repeated failed logins per account.
package loginguard

import (
	"sync"
	"time"
)

// Defaults: five failures lock the account for fifteen minutes.
const (
	DefaultMaxFailures = 5
	DefaultWindow      = 15 * time.Minute
)

type record struct {
	failures  int
	lastFail  time.Time
	lockUntil time.Time
}

// Guard tracks failed login attempts per key (normally the email).
// Counts reset on success and expire after the window.
type Guard struct {
	mu          sync.Mutex
	maxFailures int
	window      time.Duration
	records     map[string]*record
	now         func() time.Time // injectable for tests
}

// New creates a guard with the given limits; zero values fall back to defaults.
func New(maxFailures int, window time.Duration) *Guard {
	if maxFailures <= 0 {
		maxFailures = DefaultMaxFailures
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Guard{
		maxFailures: maxFailures,
		window:      window,
		records:     map[string]*record{},
		now:         time.Now,
	}
}

// Allowed reports whether a login attempt for key may proceed.
func (g *Guard) Allowed(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.records[key]
	if !ok {
		return true
	}
	now := g.now()
	if now.After(r.lockUntil) && now.Sub(r.lastFail) > g.window {
		delete(g.records, key)
		return true
	}
	return now.After(r.lockUntil)
}

// Fail records a failed attempt; reaching the limit locks the key for the window.
func (g *Guard) Fail(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	r, ok := g.records[key]
	if !ok || now.Sub(r.lastFail) > g.window {
		r = &record{}
		g.records[key] = r
	}
	r.failures++
	r.lastFail = now
	if r.failures >= g.maxFailures {
		r.lockUntil = now.Add(g.window)
	}
}

// Reset clears the failure count after a successful login.
func (g *Guard) Reset(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.records, key)
}
