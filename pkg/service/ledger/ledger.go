// Package ledger is the money-movement core: it validates inputs, enforces the
// balance invariants, performs single- and dual-account mutations under
// optimistic concurrency and appends the matching transaction records inside
// the same unit of work.
//
// Every mutating operation follows the same shape:
//
//	validate → read account(s) at version v → recompute balance →
//	version-checked write conditioned on v → append transaction record(s)
//
// A version conflict (repository.ErrVersionConflict) is terminal for the
// invocation; retrying is the caller's responsibility.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/accountnumber"
	"github.com/ledgerd/bankcore/pkg/commands"
	"github.com/ledgerd/bankcore/pkg/domain/account"
	"github.com/ledgerd/bankcore/pkg/domain/money"
	"github.com/ledgerd/bankcore/pkg/domain/user"
	"github.com/ledgerd/bankcore/pkg/repository"
)

// createAttempts bounds how often CreateAccount re-allocates after losing an
// insert race on the account-number uniqueness constraint.
const createAttempts = 3

// ErrInvalidPage is returned for a negative page or a non-positive page size.
var ErrInvalidPage = errors.New("invalid page window")

// Service orchestrates all ledger operations over a UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	alloc  *accountnumber.Allocator
	logger *slog.Logger
}

// New creates a ledger Service.
func New(uow repository.UnitOfWork, alloc *accountnumber.Allocator, logger *slog.Logger) *Service {
	return &Service{uow: uow, alloc: alloc, logger: logger}
}

// CreateAccount opens a new account with balance zero for an existing owner.
// No transaction record is produced. The allocated account number is unique;
// losing an insert race against a concurrent allocator triggers a fresh
// allocation within the same call.
func (s *Service) CreateAccount(ctx context.Context, ownerID uuid.UUID) (*account.Account, error) {
	logger := s.logger.With("operation", "create_account", "owner_id", ownerID)

	var created *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Users().Get(ctx, ownerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return user.ErrUserNotFound
			}
			return err
		}

		for attempt := 0; attempt < createAttempts; attempt++ {
			number, err := s.alloc.Allocate(ctx)
			if err != nil {
				return err
			}
			a, err := account.New().WithOwnerID(ownerID).WithNumber(number).Build()
			if err != nil {
				return err
			}
			err = uow.Accounts().Create(ctx, a)
			if errors.Is(err, repository.ErrDuplicateAccountNumber) {
				logger.Warn("account number taken at insert, re-allocating", "number", number)
				continue
			}
			if err != nil {
				return err
			}
			created = a
			return nil
		}
		return accountnumber.ErrExhausted
	})
	if err != nil {
		logger.Error("create account failed", "error", err)
		return nil, err
	}
	logger.Info("account created", "account_number", created.Number, "account_id", created.ID)
	return created, nil
}

// GetAccount looks up an account by its number.
func (s *Service) GetAccount(ctx context.Context, number string) (*account.Account, error) {
	a, err := s.uow.Accounts().GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

// Deposit adds cmd.Amount to the account and appends a DEPOSIT record. Both
// writes are one atomic unit; a concurrent mutation of the account surfaces
// as repository.ErrVersionConflict with nothing applied.
func (s *Service) Deposit(ctx context.Context, cmd commands.Deposit) (*account.Account, error) {
	logger := s.logger.With("operation", "deposit",
		"account_number", cmd.AccountNumber, "amount", cmd.Amount)

	// Amount validation precedes the lookup: a bad amount is rejected the
	// same way whether or not the account exists.
	if !cmd.Amount.IsPositive() {
		logger.Error("deposit rejected", "error", account.ErrAmountMustBePositive)
		return nil, account.ErrAmountMustBePositive
	}

	var updated *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err := s.lookup(ctx, uow, cmd.AccountNumber)
		if err != nil {
			return err
		}
		newBalance, err := a.Balance.Add(cmd.Amount)
		if err != nil {
			return err
		}
		updated, err = s.applyLeg(ctx, uow, a, newBalance, account.KindDeposit, cmd.Amount)
		return err
	})
	if err != nil {
		logger.Error("deposit failed", "error", err)
		return nil, err
	}
	logger.Info("deposit settled", "balance", updated.Balance)
	return updated, nil
}

// Withdraw removes cmd.Amount from the account and appends a WITHDRAW record.
// Fails with account.ErrInsufficientBalance before any write when the balance
// does not cover the amount.
func (s *Service) Withdraw(ctx context.Context, cmd commands.Withdraw) (*account.Account, error) {
	logger := s.logger.With("operation", "withdraw",
		"account_number", cmd.AccountNumber, "amount", cmd.Amount)

	if !cmd.Amount.IsPositive() {
		logger.Error("withdrawal rejected", "error", account.ErrAmountMustBePositive)
		return nil, account.ErrAmountMustBePositive
	}

	var updated *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err := s.lookup(ctx, uow, cmd.AccountNumber)
		if err != nil {
			return err
		}
		if err := a.ValidateWithdraw(cmd.Amount); err != nil {
			return err
		}
		newBalance, err := a.Balance.Sub(cmd.Amount)
		if err != nil {
			return err
		}
		updated, err = s.applyLeg(ctx, uow, a, newBalance, account.KindWithdraw, cmd.Amount)
		return err
	})
	if err != nil {
		logger.Error("withdraw failed", "error", err)
		return nil, err
	}
	logger.Info("withdrawal settled", "balance", updated.Balance)
	return updated, nil
}

// Transfer debits the sender and credits the receiver, appending a
// TRANSFER_OUT record on the sender and a TRANSFER_IN record on the receiver.
// All four writes are one atomic unit: a version conflict on either account,
// or a failure on either insert, aborts the whole transfer with both balances
// and the log unchanged.
func (s *Service) Transfer(ctx context.Context, cmd commands.Transfer) error {
	logger := s.logger.With("operation", "transfer",
		"from", cmd.FromAccountNumber, "to", cmd.ToAccountNumber, "amount", cmd.Amount)

	if !cmd.Amount.IsPositive() {
		logger.Error("transfer rejected", "error", account.ErrAmountMustBePositive)
		return account.ErrAmountMustBePositive
	}
	if cmd.FromAccountNumber == cmd.ToAccountNumber {
		logger.Error("transfer rejected", "error", account.ErrSameAccountTransfer)
		return account.ErrSameAccountTransfer
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		sender, err := s.lookup(ctx, uow, cmd.FromAccountNumber)
		if err != nil {
			return err
		}
		receiver, err := s.lookup(ctx, uow, cmd.ToAccountNumber)
		if err != nil {
			return err
		}
		if err := sender.ValidateTransfer(receiver, cmd.Amount); err != nil {
			return err
		}

		debited, err := sender.Balance.Sub(cmd.Amount)
		if err != nil {
			return err
		}
		credited, err := receiver.Balance.Add(cmd.Amount)
		if err != nil {
			return err
		}

		if _, err := s.applyLeg(ctx, uow, sender, debited, account.KindTransferOut, cmd.Amount); err != nil {
			return err
		}
		_, err = s.applyLeg(ctx, uow, receiver, credited, account.KindTransferIn, cmd.Amount)
		return err
	})
	if err != nil {
		logger.Error("transfer failed", "error", err)
		return err
	}
	logger.Info("transfer settled")
	return nil
}

// GetTransactionHistory returns one zero-based page of the account's records,
// most recent first. Read-only; takes no lock.
func (s *Service) GetTransactionHistory(ctx context.Context, number string, page, pageSize int) ([]*account.Transaction, error) {
	if page < 0 || pageSize <= 0 {
		return nil, fmt.Errorf("%w: page %d, size %d", ErrInvalidPage, page, pageSize)
	}
	a, err := s.GetAccount(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.uow.Transactions().ListByAccount(ctx, a.ID, page, pageSize)
}

// lookup fetches an account by number inside the unit of work, translating a
// missing record into the domain not-found error.
func (s *Service) lookup(ctx context.Context, uow repository.UnitOfWork, number string) (*account.Account, error) {
	a, err := uow.Accounts().GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

// applyLeg commits one side of a mutation: a version-checked balance write
// conditioned on the version observed at read time, followed by the matching
// transaction record. Returns the account as updated in memory.
func (s *Service) applyLeg(
	ctx context.Context,
	uow repository.UnitOfWork,
	a *account.Account,
	newBalance money.Money,
	kind account.Kind,
	amount money.Money,
) (*account.Account, error) {
	if err := uow.Accounts().UpdateBalance(ctx, a.ID, newBalance, a.Version); err != nil {
		return nil, err
	}
	if err := uow.Transactions().Create(ctx, account.NewTransaction(a.ID, kind, amount)); err != nil {
		return nil, err
	}
	a.Balance = newBalance
	a.Version++
	return a, nil
}
