package txhook

import (
	"context"
	"errors"
	"sync"

	"snsapp/internal/observability"
)

// Dispatcher executes committed hooks on a fixed worker pool, off the request
// goroutine, so request latency is unaffected by external-service latency.
type Dispatcher struct {
	jobs   chan Hook
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher with the given worker count and queue
// capacity and starts its workers.
func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 64
	}
	d := &Dispatcher{jobs: make(chan Hook, queueSize)}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for hook := range d.jobs {
		d.run(hook)
	}
}

func (d *Dispatcher) run(hook Hook) {
	defer func() {
		if r := recover(); r != nil {
			observability.GlobalLogger.Error("side effect panicked",
				"kind", hook.Kind, "panic", r)
		}
	}()
	hook.Run(context.Background())
}

// Dispatch enqueues a hook. A full queue drops the hook rather than blocking
// the request path; the drop is logged and counted.
func (d *Dispatcher) Dispatch(hook Hook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		observability.SideEffectsDropped.Inc()
		return
	}

	select {
	case d.jobs <- hook:
		observability.SideEffectsDispatched.WithLabelValues(hook.Kind).Inc()
	default:
		observability.SideEffectsDropped.Inc()
		observability.GlobalLogger.Warn("side effect dropped, queue full", "kind", hook.Kind)
	}
}

// Shutdown stops accepting hooks and waits for in-flight ones to finish, or
// until ctx expires.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.New("txhook: shutdown timed out with side effects still running")
	}
}
