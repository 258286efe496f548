package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and collects the events of the aggregates
// written through its repositories.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then publishes the collected events.
	// A publishing failure is logged and does not undo the commit.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and drops collected events.
	// Calling it after Commit is a no-op.
	Rollback(ctx context.Context) error

	// UserRepository returns a UserRepository bound to the current transaction.
	UserRepository() UserRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	// Without Begin the repository reads outside of a transaction.
	OrderRepository() OrderRepository
}
