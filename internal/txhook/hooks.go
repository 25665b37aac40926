// Package txhook schedules side effects that must run only after the
// enclosing write transaction has durably committed.
//
// A write request moves through exactly one of two paths: hooks registered
// while the transaction is pending are dispatched once the transaction
// function returns nil (committed), or discarded if it returns an error
// (rolled back). There is no other transition, and no internal retry —
// retry policy belongs to the hook itself.
package txhook

import "context"

// Hook is a post-commit side effect. It receives a context detached from the
// request's cancellation: the originating request has already returned by the
// time the hook runs and cannot cancel it.
type Hook struct {
	// Kind labels the side effect for metrics and logs.
	Kind string
	// Run executes the side effect. Failures are the hook's own concern; the
	// dispatcher only logs them.
	Run func(ctx context.Context)
}

// Hooks collects the side effects registered during one write transaction.
type Hooks struct {
	pending []Hook
}

// OnCommit registers fn to run strictly after the transaction commits. If the
// transaction rolls back, fn never runs.
func (h *Hooks) OnCommit(kind string, fn func(ctx context.Context)) {
	h.pending = append(h.pending, Hook{Kind: kind, Run: fn})
}

// take returns and clears the registered hooks.
func (h *Hooks) take() []Hook {
	taken := h.pending
	h.pending = nil
	return taken
}
