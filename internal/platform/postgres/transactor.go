package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/store"
)

// Transactor implements store.Transactor on top of store.RunInTransaction.
type Transactor struct {
	db            *sql.DB
	users         *PostgresUserStore
	teams         *PostgresTeamStore
	tasks         *PostgresTaskStore
	comments      *PostgresCommentStore
	notifications *PostgresNotificationStore
}

// NewTransactor builds a Transactor and its pool-bound stores.
func NewTransactor(db *sql.DB, logger *slog.Logger) *Transactor {
	return &Transactor{
		db:            db,
		users:         NewPostgresUserStore(db, logger),
		teams:         NewPostgresTeamStore(db, logger),
		tasks:         NewPostgresTaskStore(db, logger),
		comments:      NewPostgresCommentStore(db, logger),
		notifications: NewPostgresNotificationStore(db, logger),
	}
}

var _ store.Transactor = (*Transactor)(nil)

// Stores returns stores that run directly against the pool, for reads that
// need no transaction.
func (t *Transactor) Stores() store.Stores {
	return store.Stores{
		Users:         t.users,
		Teams:         t.teams,
		Tasks:         t.tasks,
		Comments:      t.comments,
		Notifications: t.notifications,
	}
}

// WithinTransaction implements store.Transactor.
func (t *Transactor) WithinTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx store.Stores) error,
) error {
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, store.Stores{
			Users:         t.users.WithTx(tx),
			Teams:         t.teams.WithTx(tx),
			Tasks:         t.tasks.WithTx(tx),
			Comments:      t.comments.WithTx(tx),
			Notifications: t.notifications.WithTx(tx),
		})
	})
}
