package webapi

import (
	"time"

	"github.com/ledgerd/bankcore/pkg/domain/account"
)

// CreateUserRequest registers an account owner.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
}

// CreateAccountRequest opens an account for an existing owner.
type CreateAccountRequest struct {
	OwnerID string `json:"owner_id" validate:"required,uuid"`
}

// AmountRequest carries the decimal amount of a deposit or withdrawal.
type AmountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// TransferRequest moves funds between two accounts.
type TransferRequest struct {
	FromAccountNumber string `json:"from_account_number" validate:"required"`
	ToAccountNumber   string `json:"to_account_number" validate:"required"`
	Amount            string `json:"amount" validate:"required"`
}

// AccountResponse is the wire shape of an account.
type AccountResponse struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"account_number"`
	OwnerID       string    `json:"owner_id"`
	Balance       string    `json:"balance"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionResponse is the wire shape of a transaction record.
type TransactionResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID.String(),
		AccountNumber: a.Number,
		OwnerID:       a.OwnerID.String(),
		Balance:       a.Balance.String(),
		Version:       a.Version,
		CreatedAt:     a.CreatedAt,
	}
}

func toTransactionResponses(txs []*account.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, TransactionResponse{
			ID:        tx.ID.String(),
			Kind:      string(tx.Kind),
			Amount:    tx.Amount.String(),
			Timestamp: tx.CreatedAt,
		})
	}
	return out
}
