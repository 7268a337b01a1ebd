package store

import "context"

// Stores bundles every store bound to the same connection or transaction.
type Stores struct {
	Users         UserStore
	Teams         TeamStore
	Tasks         TaskStore
	Comments      CommentStore
	Notifications NotificationStore
}

// Transactor runs a unit of work against stores that share one transaction.
type Transactor interface {
	// WithinTransaction calls fn with stores bound to a new transaction,
	// committing if fn returns nil and rolling back otherwise.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Stores) error) error
}
