// Package repository implements the store contracts from pkg/repository on
// gorm over postgres. The optimistic-concurrency guarantee lives here: every
// balance write is conditioned on the version observed at read time and a
// zero-row update surfaces as repository.ErrVersionConflict.
package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/domain/account"
	"github.com/ledgerd/bankcore/pkg/domain/money"
	"github.com/ledgerd/bankcore/pkg/domain/user"
)

// Account is the accounts table row.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number    string    `gorm:"column:account_number;uniqueIndex;not null"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null"`
	Balance   int64     `gorm:"not null"`
	Version   int64     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// Transaction is the transactions table row. Rows are append-only.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"not null"`
	Amount    int64     `gorm:"not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// User is the users table row.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

func accountToModel(a *account.Account) Account {
	return Account{
		ID:        a.ID,
		Number:    a.Number,
		OwnerID:   a.OwnerID,
		Balance:   a.Balance.MinorUnits(),
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
	}
}

func accountToDomain(m *Account) (*account.Account, error) {
	return account.New().
		WithID(m.ID).
		WithNumber(m.Number).
		WithOwnerID(m.OwnerID).
		WithBalance(money.NewFromMinorUnits(m.Balance)).
		WithVersion(m.Version).
		WithCreatedAt(m.CreatedAt).
		Build()
}

func transactionToModel(tx *account.Transaction) Transaction {
	return Transaction{
		ID:        tx.ID,
		AccountID: tx.AccountID,
		Kind:      string(tx.Kind),
		Amount:    tx.Amount.MinorUnits(),
		CreatedAt: tx.CreatedAt,
	}
}

func transactionToDomain(m *Transaction) *account.Transaction {
	return account.NewTransactionFromData(
		m.ID,
		m.AccountID,
		account.Kind(m.Kind),
		money.NewFromMinorUnits(m.Amount),
		m.CreatedAt,
	)
}

func userToModel(u *user.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func userToDomain(m *User) *user.User {
	return &user.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}
