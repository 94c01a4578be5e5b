package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/domain/account"
	"github.com/ledgerd/bankcore/pkg/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a TransactionRepository bound to the given
// session.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *account.Transaction) error {
	m := transactionToModel(tx)
	return r.db.WithContext(ctx).Create(&m).Error
}

// ListByAccount pages the account's records most recent first. The id column
// breaks timestamp ties so consecutive pages partition the log with no
// duplicates and no gaps.
func (r *transactionRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	page, pageSize int,
) ([]*account.Transaction, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Limit(pageSize).
		Offset(page * pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*account.Transaction, 0, len(rows))
	for i := range rows {
		result = append(result, transactionToDomain(&rows[i]))
	}
	return result, nil
}
