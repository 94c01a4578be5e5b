// Package commands contains command DTOs carried from the transport layer into
// the ledger service.
package commands

import "github.com/ledgerd/bankcore/pkg/domain/money"

// Deposit adds funds to one account.
type Deposit struct {
	AccountNumber string
	Amount        money.Money
}

// Withdraw removes funds from one account.
type Withdraw struct {
	AccountNumber string
	Amount        money.Money
}

// Transfer moves funds between two accounts as one atomic unit.
type Transfer struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            money.Money
}
