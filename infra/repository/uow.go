package repository

import (
	"context"

	"github.com/ledgerd/bankcore/pkg/repository"
	"gorm.io/gorm"
)

// UoW implements repository.UnitOfWork over a gorm database transaction.
// Repositories obtained inside Do share the transaction session, which is
// what makes a transfer's four writes one atomic unit.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside one database transaction; an error from fn rolls every
// write back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the base session otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Accounts implements repository.UnitOfWork.
func (u *UoW) Accounts() repository.AccountRepository {
	return NewAccountRepository(u.session())
}

// Transactions implements repository.UnitOfWork.
func (u *UoW) Transactions() repository.TransactionRepository {
	return NewTransactionRepository(u.session())
}

// Users implements repository.UnitOfWork.
func (u *UoW) Users() repository.UserRepository {
	return NewUserRepository(u.session())
}
