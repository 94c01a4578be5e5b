package webapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ledgerd/bankcore/internal/fixtures/memstore"
	"github.com/ledgerd/bankcore/pkg/accountnumber"
	"github.com/ledgerd/bankcore/pkg/domain/account"
	"github.com/ledgerd/bankcore/pkg/domain/money"
	"github.com/ledgerd/bankcore/pkg/domain/user"
	"github.com/ledgerd/bankcore/pkg/service/ledger"
	usersvc "github.com/ledgerd/bankcore/pkg/service/user"
	"github.com/ledgerd/bankcore/webapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct{ n int }

func (s *countingSource) Intn(int) int {
	s.n++
	return s.n
}

func newTestApp(store *memstore.Store) *fiber.App {
	logger := slog.Default()
	alloc := accountnumber.New(store.Accounts(), accountnumber.WithSource(&countingSource{}))
	return webapi.New(ledger.New(store, alloc, logger), usersvc.New(store, logger))
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func seedLedger(t *testing.T, store *memstore.Store) (owner *user.User, number string) {
	t.Helper()
	owner = user.New("alice", "alice@example.com")
	store.SeedUser(owner)
	a, err := account.New().
		WithOwnerID(owner.ID).
		WithNumber("ACC10001").
		WithBalance(money.MustParse("100")).
		Build()
	require.NoError(t, err)
	store.SeedAccount(a)
	return owner, a.Number
}

func TestCreateUserAndAccount(t *testing.T) {
	store := memstore.New()
	app := newTestApp(store)

	resp, payload := doJSON(t, app, fiber.MethodPost, "/users", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	ownerID := payload["data"].(map[string]any)["id"].(string)

	resp, payload = doJSON(t, app, fiber.MethodPost, "/accounts", map[string]string{
		"owner_id": ownerID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := payload["data"].(map[string]any)
	assert.Regexp(t, `^ACC\d{5}$`, data["account_number"])
	assert.Equal(t, "0.00", data["balance"])
}

func TestCreateAccount_UnknownOwner(t *testing.T) {
	store := memstore.New()
	app := newTestApp(store)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/accounts", map[string]string{
		"owner_id": "5b98e43c-2b9b-4d8a-bc5f-6a1b9ad1b9c0",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateAccount_ValidationFailure(t *testing.T) {
	store := memstore.New()
	app := newTestApp(store)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/accounts", map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	store := memstore.New()
	_, number := seedLedger(t, store)
	app := newTestApp(store)

	resp, payload := doJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/accounts/%s/deposit", number), map[string]string{"amount": "25.50"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "125.50", payload["data"].(map[string]any)["balance"])

	resp, payload = doJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/accounts/%s/withdraw", number), map[string]string{"amount": "25.50"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "100.00", payload["data"].(map[string]any)["balance"])
}

func TestDeposit_BadAmounts(t *testing.T) {
	store := memstore.New()
	_, number := seedLedger(t, store)
	app := newTestApp(store)

	for _, amount := range []string{"-5", "0", "ten", "1.005"} {
		resp, _ := doJSON(t, app, fiber.MethodPost,
			fmt.Sprintf("/accounts/%s/deposit", number), map[string]string{"amount": amount})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "amount %q", amount)
	}
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	store := memstore.New()
	_, number := seedLedger(t, store)
	app := newTestApp(store)

	resp, payload := doJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/accounts/%s/withdraw", number), map[string]string{"amount": "1000"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, payload["detail"], "insufficient balance")
}

func TestTransferEndpoint(t *testing.T) {
	store := memstore.New()
	owner, number := seedLedger(t, store)
	second, err := account.New().
		WithOwnerID(owner.ID).
		WithNumber("ACC10002").
		Build()
	require.NoError(t, err)
	store.SeedAccount(second)
	app := newTestApp(store)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/transfers", map[string]string{
		"from_account_number": number,
		"to_account_number":   "ACC10002",
		"amount":              "40",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "60.00", store.AccountByNumber(number).Balance.String())
	assert.Equal(t, "40.00", store.AccountByNumber("ACC10002").Balance.String())

	resp, _ = doJSON(t, app, fiber.MethodPost, "/transfers", map[string]string{
		"from_account_number": number,
		"to_account_number":   number,
		"amount":              "1",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "self-transfer is rejected")
}

func TestGetAccountAndHistory(t *testing.T) {
	store := memstore.New()
	_, number := seedLedger(t, store)
	app := newTestApp(store)

	resp, payload := doJSON(t, app, fiber.MethodGet, "/accounts/"+number, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "100.00", payload["data"].(map[string]any)["balance"])

	resp, _ = doJSON(t, app, fiber.MethodGet, "/accounts/ACC99999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	doJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/accounts/%s/deposit", number), map[string]string{"amount": "1"})

	resp, payload = doJSON(t, app, fiber.MethodGet,
		fmt.Sprintf("/accounts/%s/transactions?page=0&size=10", number), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	txs := payload["data"].(map[string]any)["transactions"].([]any)
	require.Len(t, txs, 1)
	assert.Equal(t, "DEPOSIT", txs[0].(map[string]any)["kind"])
}
