package repository

import "context"

// UnitOfWork is the transaction boundary for ledger operations.
//
// Do runs fn inside one store transaction; every repository obtained from the
// UnitOfWork handed to fn is bound to that transaction, so all writes of one
// logical operation commit or roll back together. An error from fn, including
// ErrVersionConflict from either leg of a transfer, discards every write of
// the unit.
//
// Outside of Do the accessors return repositories bound to the base session,
// which is sufficient for read-only paths such as transaction history.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Accounts() AccountRepository
	Transactions() TransactionRepository
	Users() UserRepository
}
