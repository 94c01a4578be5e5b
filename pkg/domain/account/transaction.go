package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/domain/money"
)

// Kind classifies a transaction record. The sign of the movement is implied by
// the kind; Amount is always the positive magnitude moved.
type Kind string

// Transaction kinds for every settled monetary event.
const (
	KindDeposit     Kind = "DEPOSIT"
	KindWithdraw    Kind = "WITHDRAW"
	KindTransferOut Kind = "TRANSFER_OUT"
	KindTransferIn  Kind = "TRANSFER_IN"
)

// Transaction is one immutable entry of the append-only transaction log.
// Exactly one record exists per settled deposit or withdrawal, and exactly two
// (TRANSFER_OUT and TRANSFER_IN) per settled transfer.
type Transaction struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Kind      Kind
	Amount    money.Money
	CreatedAt time.Time
}

// NewTransaction creates a log entry for a settled movement against accountID.
// The write timestamp doubles as the sole ordering key for history reads.
func NewTransaction(accountID uuid.UUID, kind Kind, amount money.Money) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTransactionFromData hydrates a Transaction from raw store data.
// This bypasses invariants and is only for repositories and test fixtures.
func NewTransactionFromData(
	id, accountID uuid.UUID,
	kind Kind,
	amount money.Money,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		ID:        id,
		AccountID: accountID,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: createdAt,
	}
}
