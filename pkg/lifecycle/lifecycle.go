// Package lifecycle coordinates startup hooks, readiness requirements, and
// graceful shutdown.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator manages startup and shutdown hooks for the application lifecycle.
// It is ready once every startup hook has returned and every registered
// requirement reports ready.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	started    atomic.Bool

	reqMu        sync.RWMutex
	requirements map[string]ReadinessChecker
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:          ctx,
		cancel:       cancel,
		requirements: make(map[string]ReadinessChecker),
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a function to run concurrently during startup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Go(fn)
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// Require registers a named subsystem that must report ready before the
// coordinator does.
func (c *Coordinator) Require(name string, checker ReadinessChecker) {
	c.reqMu.Lock()
	defer c.reqMu.Unlock()
	c.requirements[name] = checker
}

// Started reports whether all startup hooks have completed.
func (c *Coordinator) Started() bool {
	return c.started.Load()
}

// Ready returns true after startup completes while every requirement is ready.
func (c *Coordinator) Ready() bool {
	if !c.Started() {
		return false
	}

	c.reqMu.RLock()
	defer c.reqMu.RUnlock()
	for _, r := range c.requirements {
		if !r.Ready() {
			return false
		}
	}
	return true
}

// Status reports readiness per registered requirement.
func (c *Coordinator) Status() map[string]bool {
	c.reqMu.RLock()
	defer c.reqMu.RUnlock()

	status := make(map[string]bool, len(c.requirements))
	for name, r := range c.requirements {
		status[name] = r.Ready()
	}
	return status
}

// WaitForStartup blocks until all startup hooks have completed and marks
// startup as finished.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	c.started.Store(true)
}

// Shutdown cancels the context and waits for shutdown hooks to complete
// within the given timeout.
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
