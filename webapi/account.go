// Package webapi is the thin fiber transport over the ledger service. It only
// parses and validates requests, maps domain failures to problem responses
// and never contains money-movement logic.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/commands"
	"github.com/ledgerd/bankcore/pkg/domain/money"
	"github.com/ledgerd/bankcore/pkg/service/ledger"
	usersvc "github.com/ledgerd/bankcore/pkg/service/user"
)

// New builds the fiber app with all ledger routes.
func New(ledgerSvc *ledger.Service, userSvc *usersvc.Service) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "bankcore"})

	app.Post("/users", CreateUser(userSvc))
	app.Post("/accounts", CreateAccount(ledgerSvc))
	app.Get("/accounts/:number", GetAccount(ledgerSvc))
	app.Post("/accounts/:number/deposit", Deposit(ledgerSvc))
	app.Post("/accounts/:number/withdraw", Withdraw(ledgerSvc))
	app.Get("/accounts/:number/transactions", GetTransactionHistory(ledgerSvc))
	app.Post("/transfers", Transfer(ledgerSvc))

	return app
}

// CreateUser registers an account owner.
func CreateUser(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateUserRequest](c)
		if input == nil {
			return err
		}
		u, err := svc.Create(c.Context(), input.Username, input.Email)
		if err != nil {
			return DomainErrorJSON(c, "Failed to create user", err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "User created", fiber.Map{
			"id":       u.ID.String(),
			"username": u.Username,
			"email":    u.Email,
		})
	}
}

// CreateAccount opens a new account for an existing owner.
func CreateAccount(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		ownerID, err := uuid.Parse(input.OwnerID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid owner ID", err.Error())
		}
		a, err := svc.CreateAccount(c.Context(), ownerID)
		if err != nil {
			return DomainErrorJSON(c, "Failed to create account", err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Account created", toAccountResponse(a))
	}
}

// GetAccount returns the current account state.
func GetAccount(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.GetAccount(c.Context(), c.Params("number"))
		if err != nil {
			return DomainErrorJSON(c, "Failed to get account", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Account", toAccountResponse(a))
	}
}

// Deposit adds funds to the account in the URL.
func Deposit(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.Parse(input.Amount)
		if err != nil {
			return DomainErrorJSON(c, "Invalid amount", err)
		}
		a, err := svc.Deposit(c.Context(), commands.Deposit{
			AccountNumber: c.Params("number"),
			Amount:        amount,
		})
		if err != nil {
			return DomainErrorJSON(c, "Failed to deposit", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", toAccountResponse(a))
	}
}

// Withdraw removes funds from the account in the URL.
func Withdraw(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.Parse(input.Amount)
		if err != nil {
			return DomainErrorJSON(c, "Invalid amount", err)
		}
		a, err := svc.Withdraw(c.Context(), commands.Withdraw{
			AccountNumber: c.Params("number"),
			Amount:        amount,
		})
		if err != nil {
			return DomainErrorJSON(c, "Failed to withdraw", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", toAccountResponse(a))
	}
}

// Transfer moves funds between two accounts atomically.
func Transfer(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.Parse(input.Amount)
		if err != nil {
			return DomainErrorJSON(c, "Invalid amount", err)
		}
		err = svc.Transfer(c.Context(), commands.Transfer{
			FromAccountNumber: input.FromAccountNumber,
			ToAccountNumber:   input.ToAccountNumber,
			Amount:            amount,
		})
		if err != nil {
			return DomainErrorJSON(c, "Failed to transfer", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", nil)
	}
}

// GetTransactionHistory returns one page of the account's records, most
// recent first. Query parameters: page (zero-based, default 0) and size
// (default 20).
func GetTransactionHistory(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 0)
		size := c.QueryInt("size", 20)
		txs, err := svc.GetTransactionHistory(c.Context(), c.Params("number"), page, size)
		if err != nil {
			return DomainErrorJSON(c, "Failed to list transactions", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transactions", fiber.Map{
			"page":         page,
			"size":         size,
			"transactions": toTransactionResponses(txs),
		})
	}
}
