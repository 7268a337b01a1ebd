package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/store"
)

// Transactor implements store.Transactor by running fn directly against
// Stores. It records whether the last unit of work would have committed.
type Transactor struct {
	Stores store.Stores

	// BeginErr, if set, is returned without calling fn.
	BeginErr error

	mu        sync.Mutex
	Commits   int
	Rollbacks int
}

var _ store.Transactor = (*Transactor)(nil)

// WithinTransaction implements store.Transactor.
func (t *Transactor) WithinTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx store.Stores) error,
) error {
	if t.BeginErr != nil {
		return t.BeginErr
	}
	err := fn(ctx, t.Stores)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}
