// Package repository defines the store contracts the ledger service depends
// on. Implementations live in infra/repository; tests use the in-memory
// fixtures under internal/fixtures.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/domain/account"
	"github.com/ledgerd/bankcore/pkg/domain/money"
	"github.com/ledgerd/bankcore/pkg/domain/user"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned by a version-checked update when a
	// concurrent writer committed first. The operation is retryable by the
	// caller after a re-read; the service never retries it implicitly.
	ErrVersionConflict = errors.New("version conflict: concurrent modification")

	// ErrDuplicateAccountNumber is returned when an insert violates the
	// account-number uniqueness constraint.
	ErrDuplicateAccountNumber = errors.New("account number already exists")
)

// AccountRepository is the durable keyed store for accounts.
type AccountRepository interface {
	// Get retrieves an account by its surrogate id.
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// GetByNumber retrieves an account by its unique account number.
	GetByNumber(ctx context.Context, number string) (*account.Account, error)

	// ExistsByNumber reports whether an account with the given number exists.
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// Create inserts a new account. Returns ErrDuplicateAccountNumber when the
	// number is already taken.
	Create(ctx context.Context, a *account.Account) error

	// UpdateBalance writes newBalance conditioned on expectedVersion and bumps
	// the version. Returns ErrVersionConflict when the stored version no
	// longer matches.
	UpdateBalance(ctx context.Context, id uuid.UUID, newBalance money.Money, expectedVersion int64) error
}

// TransactionRepository is the durable append-only store for transaction
// records.
type TransactionRepository interface {
	// Create appends a transaction record. Records are never updated or
	// deleted afterwards.
	Create(ctx context.Context, tx *account.Transaction) error

	// ListByAccount returns one zero-based page of the account's records
	// ordered by timestamp descending (most recent first).
	ListByAccount(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]*account.Transaction, error)
}

// UserRepository is the thin user directory consumed when resolving the owner
// of a newly created account.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *user.User) error
}
