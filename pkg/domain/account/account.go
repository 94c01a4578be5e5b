// Package account holds the ledger's core entities: the Account aggregate and
// the immutable Transaction records explaining how each balance was reached.
package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/domain/money"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found by its number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAmountMustBePositive is returned when an operation amount is missing,
	// zero or negative.
	ErrAmountMustBePositive = errors.New("amount must be positive")

	// ErrInsufficientBalance is returned when a withdrawal or transfer exceeds
	// the account balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSameAccountTransfer is returned when a transfer names the same account
	// on both legs.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

	// ErrNilAccount is returned when a nil account is handed to a transfer.
	ErrNilAccount = errors.New("nil account")
)

// Account is a user's ledger account.
//
// Invariants:
//   - Number is globally unique and immutable after creation.
//   - Balance is never negative at any commit boundary.
//   - Version strictly increases with every committed balance mutation; the
//     store rejects writes conditioned on a stale version.
type Account struct {
	ID        uuid.UUID
	Number    string
	OwnerID   uuid.UUID
	Balance   money.Money
	Version   int64
	CreatedAt time.Time
}

// Builder constructs Account instances, keeping invalid accounts
// unrepresentable outside of store hydration.
type Builder struct {
	id        uuid.UUID
	number    string
	ownerID   uuid.UUID
	balance   money.Money
	version   int64
	createdAt time.Time
}

// New returns a Builder with a fresh ID, zero balance and the current time.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
}

// WithID overrides the generated surrogate id. Used for store hydration.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithNumber sets the human-facing account number. Mandatory.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithOwnerID sets the owning user. Mandatory.
func (b *Builder) WithOwnerID(ownerID uuid.UUID) *Builder {
	b.ownerID = ownerID
	return b
}

// WithBalance sets the balance. Only for store hydration and test setup.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithVersion sets the optimistic-locking version. Only for store hydration.
func (b *Builder) WithVersion(version int64) *Builder {
	b.version = version
	return b
}

// WithCreatedAt sets the creation timestamp. Only for store hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.ownerID == uuid.Nil {
		return nil, errors.New("ownerID is required")
	}
	if b.number == "" {
		return nil, errors.New("account number is required")
	}
	if b.balance.IsNegative() {
		return nil, errors.New("balance cannot be negative")
	}
	return &Account{
		ID:        b.id,
		Number:    b.number,
		OwnerID:   b.ownerID,
		Balance:   b.balance,
		Version:   b.version,
		CreatedAt: b.createdAt,
	}, nil
}

// ValidateDeposit checks the invariants for a deposit of amount.
func (a *Account) ValidateDeposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	return nil
}

// ValidateWithdraw checks the invariants for a withdrawal of amount:
// the amount must be positive and must not drive the balance negative.
func (a *Account) ValidateWithdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if a.Balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// ValidateTransfer checks the invariants for moving amount from this account
// to dest: both accounts present, distinct, positive amount, covered by the
// sender's balance.
func (a *Account) ValidateTransfer(dest *Account, amount money.Money) error {
	if a == nil || dest == nil {
		return ErrNilAccount
	}
	if a.ID == dest.ID {
		return ErrSameAccountTransfer
	}
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if a.Balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	return nil
}
