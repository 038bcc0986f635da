// Package lifecycle coordinates concurrent startup and shutdown hooks and
// aggregates subsystem readiness.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ReadinessChecker reports whether a subsystem can serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator runs startup and shutdown hooks and tracks readiness.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup

	mu       sync.RWMutex
	started  bool
	checkers []ReadinessChecker
}

// New creates a Coordinator whose context is cancelled on Shutdown.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{ctx: ctx, cancel: cancel}
}

// Context is cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn concurrently; WaitForStartup waits for it.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Go(fn)
}

// OnShutdown runs fn concurrently; Shutdown waits for it.
// Hooks block on <-c.Context().Done() before cleaning up.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// Track adds a subsystem whose readiness gates Ready.
func (c *Coordinator) Track(checker ReadinessChecker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkers = append(c.checkers, checker)
}

// Ready is true once startup hooks have completed and every tracked subsystem is ready.
func (c *Coordinator) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return false
	}
	for _, chk := range c.checkers {
		if !chk.Ready() {
			return false
		}
	}
	return true
}

// WaitForStartup blocks until every startup hook has returned.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	c.mu.Lock()
	c.started = true
	c.mu.Unlock()
}

// Shutdown cancels the context and waits up to timeout for shutdown hooks.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
