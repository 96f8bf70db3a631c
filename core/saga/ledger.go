// Package saga records side effects performed outside a database transaction
// so they can be undone when the transaction fails.
package saga

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Undo reverses a single recorded step.
type Undo func(ctx context.Context) error

type step struct {
	name string
	undo Undo
}

// Ledger is an append-only list of compensations. It is safe for concurrent use.
type Ledger struct {
	mu     sync.Mutex
	steps  []step
	logger *zap.Logger
}

// New creates an empty ledger.
func New(logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{logger: logger}
}

// Record appends a compensation for a completed step.
func (l *Ledger) Record(name string, undo Undo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = append(l.steps, step{name: name, undo: undo})
}

// Len returns the number of pending compensations.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.steps)
}

// Compensate runs every recorded undo in reverse order and empties the ledger.
// A failing undo does not stop the others; failures are logged and returned.
func (l *Ledger) Compensate(ctx context.Context) []error {
	l.mu.Lock()
	steps := l.steps
	l.steps = nil
	l.mu.Unlock()

	var errs []error
	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]
		if err := s.undo(ctx); err != nil {
			l.logger.Warn("Compensation failed", zap.String("step", s.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errs
}

// Discard forgets every recorded step, typically after a successful commit.
func (l *Ledger) Discard() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = nil
}
