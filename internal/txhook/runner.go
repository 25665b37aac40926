package txhook

import (
	"context"

	"gorm.io/gorm"
)

// Runner wraps write transactions and resolves the hooks registered inside
// them: dispatch on commit, discard on rollback.
type Runner struct {
	db         *gorm.DB
	dispatcher *Dispatcher
}

// NewRunner creates a runner bound to a database handle and dispatcher.
func NewRunner(db *gorm.DB, dispatcher *Dispatcher) *Runner {
	return &Runner{db: db, dispatcher: dispatcher}
}

// InTx runs fn inside a single database transaction. Hooks registered on the
// provided Hooks are dispatched exactly once after the transaction commits;
// an error from fn rolls the transaction back and discards them.
func (r *Runner) InTx(ctx context.Context, fn func(tx *gorm.DB, hooks *Hooks) error) error {
	hooks := &Hooks{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, hooks)
	})
	if err != nil {
		// Rolled back: registered hooks are discarded, never dispatched.
		return err
	}

	for _, hook := range hooks.take() {
		r.dispatcher.Dispatch(hook)
	}
	return nil
}

// DB exposes the underlying handle for read paths that need no transaction.
func (r *Runner) DB() *gorm.DB {
	return r.db
}
