package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/domain/account"
	"github.com/ledgerd/bankcore/pkg/domain/money"
	"github.com/ledgerd/bankcore/pkg/repository"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an AccountRepository bound to the given session.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return accountToDomain(&m)
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "account_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return accountToDomain(&m)
}

func (r *accountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("account_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := accountToModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateAccountNumber
		}
		return err
	}
	return nil
}

// UpdateBalance performs the version-checked write. The predicate on the
// version column is what serializes concurrent mutations of one account: of
// two writers that read the same version, the second one matches zero rows.
func (r *accountRepository) UpdateBalance(
	ctx context.Context,
	id uuid.UUID,
	newBalance money.Money,
	expectedVersion int64,
) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"balance":    newBalance.MinorUnits(),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrVersionConflict
	}
	return nil
}
