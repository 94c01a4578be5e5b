package account_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/domain/account"
	"github.com/ledgerd/bankcore/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAccount(t *testing.T, balance string) *account.Account {
	t.Helper()
	a, err := account.New().
		WithOwnerID(uuid.New()).
		WithNumber("ACC12345").
		WithBalance(money.MustParse(balance)).
		Build()
	require.NoError(t, err)
	return a
}

func TestBuilder(t *testing.T) {
	ownerID := uuid.New()
	a, err := account.New().WithOwnerID(ownerID).WithNumber("ACC54321").Build()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "ACC54321", a.Number)
	assert.Equal(t, ownerID, a.OwnerID)
	assert.True(t, a.Balance.IsZero())
	assert.Equal(t, int64(0), a.Version)
	assert.WithinDuration(t, time.Now().UTC(), a.CreatedAt, time.Minute)
}

func TestBuilder_Hydration(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	a, err := account.New().
		WithID(id).
		WithOwnerID(uuid.New()).
		WithNumber("ACC11111").
		WithBalance(money.MustParse("12.34")).
		WithVersion(7).
		WithCreatedAt(created).
		Build()
	require.NoError(t, err)

	assert.Equal(t, id, a.ID)
	assert.Equal(t, int64(7), a.Version)
	assert.Equal(t, created, a.CreatedAt)
	assert.Equal(t, "12.34", a.Balance.String())
}

func TestBuilder_Invalid(t *testing.T) {
	_, err := account.New().WithNumber("ACC12345").Build()
	require.Error(t, err, "owner is mandatory")

	_, err = account.New().WithOwnerID(uuid.New()).Build()
	require.Error(t, err, "number is mandatory")

	_, err = account.New().
		WithOwnerID(uuid.New()).
		WithNumber("ACC12345").
		WithBalance(money.MustParse("-1")).
		Build()
	require.Error(t, err, "negative balance is unrepresentable")
}

func TestValidateDeposit(t *testing.T) {
	a := buildAccount(t, "0")

	assert.NoError(t, a.ValidateDeposit(money.MustParse("0.01")))
	assert.ErrorIs(t, a.ValidateDeposit(money.Zero), account.ErrAmountMustBePositive)
	assert.ErrorIs(t, a.ValidateDeposit(money.MustParse("-1")), account.ErrAmountMustBePositive)
}

func TestValidateWithdraw(t *testing.T) {
	a := buildAccount(t, "10")

	assert.NoError(t, a.ValidateWithdraw(money.MustParse("10")), "withdrawing the full balance is allowed")
	assert.ErrorIs(t, a.ValidateWithdraw(money.MustParse("10.01")), account.ErrInsufficientBalance)
	assert.ErrorIs(t, a.ValidateWithdraw(money.Zero), account.ErrAmountMustBePositive)
}

func TestValidateTransfer(t *testing.T) {
	sender := buildAccount(t, "10")
	receiver, err := account.New().
		WithOwnerID(uuid.New()).
		WithNumber("ACC67890").
		Build()
	require.NoError(t, err)

	assert.NoError(t, sender.ValidateTransfer(receiver, money.MustParse("10")))
	assert.ErrorIs(t, sender.ValidateTransfer(nil, money.MustParse("1")), account.ErrNilAccount)
	assert.ErrorIs(t, sender.ValidateTransfer(sender, money.MustParse("1")), account.ErrSameAccountTransfer)
	assert.ErrorIs(t, sender.ValidateTransfer(receiver, money.Zero), account.ErrAmountMustBePositive)
	assert.ErrorIs(t, sender.ValidateTransfer(receiver, money.MustParse("10.01")), account.ErrInsufficientBalance)
}
