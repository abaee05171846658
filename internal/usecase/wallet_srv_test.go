package usecase_test

import (
	"context"
	"errors"
	"testing"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/payos"
	"cosplay-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCredit_RecordsBalanceAfter(t *testing.T) {
	h := newHarness(t)
	ref := "ESC-20260101-150000-0001"

	h.m.user.On("FindByIDForUpdate", mock.Anything, int64(20)).Return(userWithBalance(20, 75000), nil)
	h.m.wallet.On("Create", mock.Anything, mock.MatchedBy(func(w *entity.WalletTransaction) bool {
		return w.Status == entity.WalletTxCompleted && *w.ReferenceID == ref
	})).Return(nil)
	h.m.user.On("UpdateWalletBalance", mock.Anything, int64(20), decimalEq(vnd(100000))).Return(nil)

	wtx, err := h.svc.Wallet.Credit(context.Background(), 20, entity.WalletTxEscrowRelease, vnd(25000), "release", &ref)

	require.NoError(t, err)
	assert.True(t, wtx.BalanceAfter.Equal(vnd(100000)))
	assert.Equal(t, 1, h.tx.calls)
}

func TestCredit_RejectsDebitType(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Wallet.Credit(context.Background(), 20, entity.WalletTxDebit, vnd(1000), "nope", nil)

	require.Error(t, err)
	assert.Empty(t, h.m.user.Calls)
}

func TestDebit_InsufficientLeavesLedgerUntouched(t *testing.T) {
	h := newHarness(t)

	h.m.user.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(userWithBalance(10, 9999), nil)

	_, err := h.svc.Wallet.Debit(context.Background(), 10, vnd(10000), "booking", nil)

	require.ErrorIs(t, err, usecase.ErrInsufficientFunds)
	assert.Empty(t, h.m.wallet.Calls)
	h.m.user.AssertNotCalled(t, "UpdateWalletBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestDebit_ExactBalanceGoesToZero(t *testing.T) {
	h := newHarness(t)

	h.m.user.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(userWithBalance(10, 10000), nil)
	h.m.wallet.On("Create", mock.Anything, mock.AnythingOfType("*entity.WalletTransaction")).Return(nil)
	h.m.user.On("UpdateWalletBalance", mock.Anything, int64(10), decimalEq(decimal.Zero)).Return(nil)

	wtx, err := h.svc.Wallet.Debit(context.Background(), 10, vnd(10000), "booking", nil)

	require.NoError(t, err)
	assert.Equal(t, entity.WalletTxDebit, wtx.Type)
	assert.True(t, wtx.BalanceAfter.IsZero())
}

func TestApply_RejectsNonPositiveAmount(t *testing.T) {
	h := newHarness(t)

	for _, amount := range []decimal.Decimal{decimal.Zero, vnd(-5)} {
		_, err := h.svc.Wallet.Debit(context.Background(), 10, amount, "x", nil)
		assert.ErrorIs(t, err, utils.ErrValidation)
	}
	assert.Equal(t, 0, h.tx.calls)
}

func TestInitiateTopUp_PendingUntilWebhook(t *testing.T) {
	h := newHarness(t)
	h.gateway.link = &payos.CheckoutResult{CheckoutURL: "https://pay.example/topup"}

	h.m.user.On("FindByID", mock.Anything, int64(10)).Return(userWithBalance(10, 0), nil)
	h.m.wallet.On("Create", mock.Anything, mock.MatchedBy(func(w *entity.WalletTransaction) bool {
		return w.Status == entity.WalletTxPending && w.OrderCode != nil && w.BalanceAfter == nil
	})).Return(nil)

	resp, err := h.svc.Wallet.InitiateTopUp(context.Background(), 10, &request.TopUpRequest{Amount: vnd(50000)})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/topup", resp.CheckoutURL)
	require.Len(t, h.gateway.links, 1)
	assert.Equal(t, resp.OrderCode, h.gateway.links[0])
	h.m.user.AssertNotCalled(t, "UpdateWalletBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestInitiateTopUp_FractionalAmountRejected(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Wallet.InitiateTopUp(context.Background(), 10,
		&request.TopUpRequest{Amount: decimal.RequireFromString("1000.50")})

	require.ErrorIs(t, err, utils.ErrValidation)
	assert.Empty(t, h.gateway.links)
}

func TestInitiateTopUp_GatewayFailureFailsRow(t *testing.T) {
	h := newHarness(t)
	h.gateway.linkErr = errors.New("timeout")

	h.m.user.On("FindByID", mock.Anything, int64(10)).Return(userWithBalance(10, 0), nil)
	h.m.wallet.On("Create", mock.Anything, mock.AnythingOfType("*entity.WalletTransaction")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.WalletTransaction).ID = 77
		}).Return(nil)
	h.m.wallet.On("FailPending", mock.Anything, int64(77)).Return(nil)

	_, err := h.svc.Wallet.InitiateTopUp(context.Background(), 10, &request.TopUpRequest{Amount: vnd(50000)})

	require.ErrorIs(t, err, utils.ErrExternal)
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		balance    int64
		ledger     int64
		consistent bool
	}{
		{name: "in sync", balance: 150000, ledger: 150000, consistent: true},
		{name: "drifted", balance: 150000, ledger: 140000, consistent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.m.user.On("FindByID", mock.Anything, int64(10)).Return(userWithBalance(10, tt.balance), nil)
			h.m.wallet.On("SignedSum", mock.Anything, int64(10)).Return(vnd(tt.ledger), nil)

			resp, err := h.svc.Wallet.Reconcile(context.Background(), 10)

			require.NoError(t, err)
			assert.Equal(t, tt.consistent, resp.Consistent)
			assert.True(t, resp.LedgerSum.Equal(vnd(tt.ledger)))
		})
	}
}
