// Package memstore is an in-memory UnitOfWork used by service and transport
// tests. It honors the same contract as the gorm implementation: repositories
// hand out copies, version-checked updates reject stale writers, and Do rolls
// every write of the unit back when fn fails.
//
// Failure-injection hooks let tests force a concurrent commit between read
// and write, or fail a transaction insert mid-unit, to exercise the rollback
// paths deterministically.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/domain/account"
	"github.com/ledgerd/bankcore/pkg/domain/money"
	"github.com/ledgerd/bankcore/pkg/domain/user"
	"github.com/ledgerd/bankcore/pkg/repository"
)

// Store is an in-memory repository.UnitOfWork.
type Store struct {
	mu sync.Mutex

	accounts map[uuid.UUID]*account.Account
	byNumber map[string]uuid.UUID
	txs      []*account.Transaction
	users    map[uuid.UUID]*user.User

	// BeforeUpdateBalance runs before every version-checked balance write.
	// Tests use it to commit a competing write or return an error.
	BeforeUpdateBalance func(s *Store, id uuid.UUID) error

	// BeforeTransactionCreate runs before every transaction insert. A non-nil
	// error fails the insert, aborting the surrounding unit.
	BeforeTransactionCreate func(tx *account.Transaction) error

	// external records competing writes applied via CommitCompetingWrite so
	// they survive the surrounding unit's rollback, the way an independently
	// committed transaction would in a real store.
	external []externalWrite
}

type externalWrite struct {
	id      uuid.UUID
	balance money.Money
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]*account.Account),
		byNumber: make(map[string]uuid.UUID),
		users:    make(map[uuid.UUID]*user.User),
	}
}

// Do runs fn against the store, restoring the pre-call state when fn fails.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapAccounts := make(map[uuid.UUID]*account.Account, len(s.accounts))
	for id, a := range s.accounts {
		cp := *a
		snapAccounts[id] = &cp
	}
	snapByNumber := make(map[string]uuid.UUID, len(s.byNumber))
	for n, id := range s.byNumber {
		snapByNumber[n] = id
	}
	snapTxs := append([]*account.Transaction(nil), s.txs...)
	snapUsers := make(map[uuid.UUID]*user.User, len(s.users))
	for id, u := range s.users {
		cp := *u
		snapUsers[id] = &cp
	}

	s.external = nil
	if err := fn(s); err != nil {
		s.accounts = snapAccounts
		s.byNumber = snapByNumber
		s.txs = snapTxs
		s.users = snapUsers
		for _, w := range s.external {
			s.applyWrite(w)
		}
		s.external = nil
		return err
	}
	s.external = nil
	return nil
}

func (s *Store) applyWrite(w externalWrite) {
	a, ok := s.accounts[w.id]
	if !ok {
		return
	}
	a.Balance = w.balance
	a.Version++
}

// Accounts implements repository.UnitOfWork.
func (s *Store) Accounts() repository.AccountRepository { return (*accountRepo)(s) }

// Transactions implements repository.UnitOfWork.
func (s *Store) Transactions() repository.TransactionRepository { return (*transactionRepo)(s) }

// Users implements repository.UnitOfWork.
func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }

// SeedUser inserts a user directly, bypassing the unit of work.
func (s *Store) SeedUser(u *user.User) {
	cp := *u
	s.users[u.ID] = &cp
}

// SeedAccount inserts an account directly, bypassing the unit of work.
func (s *Store) SeedAccount(a *account.Account) {
	cp := *a
	s.accounts[a.ID] = &cp
	s.byNumber[a.Number] = a.ID
}

// SeedTransaction appends a record directly, bypassing the unit of work.
func (s *Store) SeedTransaction(tx *account.Transaction) {
	cp := *tx
	s.txs = append(s.txs, &cp)
}

// AccountByNumber returns the stored state of an account for assertions.
func (s *Store) AccountByNumber(number string) *account.Account {
	id, ok := s.byNumber[number]
	if !ok {
		return nil
	}
	cp := *s.accounts[id]
	return &cp
}

// TransactionCount returns how many records the log holds.
func (s *Store) TransactionCount() int { return len(s.txs) }

// CommitCompetingWrite applies a balance write as if another caller committed
// it, bumping the version. The write sticks even when the unit it interrupts
// rolls back. Used to provoke version conflicts.
func (s *Store) CommitCompetingWrite(id uuid.UUID, balance money.Money) {
	w := externalWrite{id: id, balance: balance}
	s.applyWrite(w)
	s.external = append(s.external, w)
}

type accountRepo Store

func (r *accountRepo) Get(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *accountRepo) GetByNumber(_ context.Context, number string) (*account.Account, error) {
	id, ok := r.byNumber[number]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r.accounts[id]
	return &cp, nil
}

func (r *accountRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	_, ok := r.byNumber[number]
	return ok, nil
}

func (r *accountRepo) Create(_ context.Context, a *account.Account) error {
	if _, taken := r.byNumber[a.Number]; taken {
		return repository.ErrDuplicateAccountNumber
	}
	cp := *a
	r.accounts[a.ID] = &cp
	r.byNumber[a.Number] = a.ID
	return nil
}

func (r *accountRepo) UpdateBalance(_ context.Context, id uuid.UUID, newBalance money.Money, expectedVersion int64) error {
	if r.BeforeUpdateBalance != nil {
		if err := r.BeforeUpdateBalance((*Store)(r), id); err != nil {
			return err
		}
	}
	a, ok := r.accounts[id]
	if !ok || a.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	a.Balance = newBalance
	a.Version++
	return nil
}

type transactionRepo Store

func (r *transactionRepo) Create(_ context.Context, tx *account.Transaction) error {
	if r.BeforeTransactionCreate != nil {
		if err := r.BeforeTransactionCreate(tx); err != nil {
			return err
		}
	}
	cp := *tx
	r.txs = append(r.txs, &cp)
	return nil
}

func (r *transactionRepo) ListByAccount(_ context.Context, accountID uuid.UUID, page, pageSize int) ([]*account.Transaction, error) {
	var all []*account.Transaction
	for _, tx := range r.txs {
		if tx.AccountID == accountID {
			cp := *tx
			all = append(all, &cp)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return bytes.Compare(all[i].ID[:], all[j].ID[:]) > 0
	})
	start := page * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

type userRepo Store

func (r *userRepo) Get(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}
