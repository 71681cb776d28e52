package core

// build_limiter.go bounds how many catalog builds run at once.
//
// Every build fetches all sheets from the upstream spreadsheet host, so a
// burst of uncached requests would multiply upstream traffic. Builds beyond
// the limit wait up to maxWait and then fail with ErrTooManyBuilds.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyBuilds is returned when no build slot frees up within the wait time.
var ErrTooManyBuilds = errors.New("too many catalog builds in progress")

// DefaultMaxConcurrentBuilds is the default limit for parallel builds.
const DefaultMaxConcurrentBuilds = 4

// DefaultBuildWait is how long a build waits for a slot before failing.
const DefaultBuildWait = 10 * time.Second

// BuildLimiter is a counting semaphore for catalog builds.
type BuildLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewBuildLimiter creates a limiter allowing maxConcurrent simultaneous builds.
func NewBuildLimiter(maxConcurrent int, maxWait time.Duration) *BuildLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentBuilds
	}
	if maxWait <= 0 {
		maxWait = DefaultBuildWait
	}
	return &BuildLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire waits for a build slot. The caller must Release on success.
func (l *BuildLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-timer.C:
		return ErrTooManyBuilds
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire.
func (l *BuildLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// ActiveCount returns the number of running builds.
func (l *BuildLimiter) ActiveCount() int {
	return int(l.active.Load())
}

// MaxConcurrent returns the configured limit.
func (l *BuildLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no build is running or ctx is done.
// Used during shutdown.
func (l *BuildLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// BuildLimiterStatus is a snapshot of limiter usage.
type BuildLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for the health endpoint.
func (l *BuildLimiter) Status() BuildLimiterStatus {
	return BuildLimiterStatus{
		Active:        l.ActiveCount(),
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}
