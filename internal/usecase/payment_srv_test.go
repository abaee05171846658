package usecase_test

import (
	"context"
	"errors"
	"testing"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/payos"
	"cosplay-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const orderCode int64 = 1767225600000123

func paidPayload() *payos.WebhookPayload {
	return &payos.WebhookPayload{Code: "00", Desc: "success", Success: true}
}

func pendingPayment() *entity.Payment {
	return &entity.Payment{
		BaseNoDelete: entity.BaseNoDelete{ID: 900},
		Code:         orderCode,
		BookingID:    100,
		Amount:       vnd(200000),
		Method:       entity.PaymentMethodPayOS,
		Status:       entity.PaymentStatusPending,
	}
}

func pendingTopUp(amount int64) *entity.WalletTransaction {
	code := orderCode
	return &entity.WalletTransaction{
		BaseSimple: entity.BaseSimple{ID: 3},
		UserID:     10,
		Code:       "WT-20260101-120000-0001",
		OrderCode:  &code,
		Type:       entity.WalletTxTopUp,
		Amount:     vnd(amount),
		Status:     entity.WalletTxPending,
	}
}

func TestHandleWebhook_BadSignatureTouchesNothing(t *testing.T) {
	h := newHarness(t)
	h.gateway.verifyErr = errors.New("signature mismatch")

	err := h.svc.Payment.HandleWebhook(context.Background(), paidPayload())

	require.ErrorIs(t, err, utils.ErrValidation)
	assert.Equal(t, 0, h.tx.calls)
	assert.Empty(t, h.m.wallet.Calls)
	assert.Empty(t, h.m.payment.Calls)
	assert.Empty(t, h.m.user.Calls)
	assert.Empty(t, h.publisher.published())
}

func TestHandleWebhook_TopUpCreditsWallet(t *testing.T) {
	h := newHarness(t)
	h.gateway.data = &payos.WebhookData{Code: "00", OrderCode: orderCode, Amount: 50000, Reference: "FT2601"}

	topUp := pendingTopUp(50000)
	h.m.wallet.On("FindByOrderCodeForUpdate", mock.Anything, orderCode).Return(topUp, nil)
	h.m.user.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(userWithBalance(10, 20000), nil)
	h.m.wallet.On("CompletePending", mock.Anything, mock.MatchedBy(func(w *entity.WalletTransaction) bool {
		return w.Status == entity.WalletTxCompleted &&
			w.BalanceAfter.Equal(vnd(70000)) &&
			*w.ReferenceID == "FT2601"
	})).Return(nil)
	h.m.user.On("UpdateWalletBalance", mock.Anything, int64(10), decimalEq(vnd(70000))).Return(nil)

	err := h.svc.Payment.HandleWebhook(context.Background(), paidPayload())

	require.NoError(t, err)
	assert.Equal(t, []string{string(entity.NotifWalletTopUp)}, h.publisher.published())
	h.m.payment.AssertNotCalled(t, "FindByCodeForUpdate", mock.Anything, mock.Anything)
}

func TestHandleWebhook_DuplicateTopUpIsNoop(t *testing.T) {
	h := newHarness(t)
	h.gateway.data = &payos.WebhookData{Code: "00", OrderCode: orderCode, Amount: 50000, Reference: "FT2601"}

	settled := pendingTopUp(50000)
	settled.Status = entity.WalletTxCompleted
	h.m.wallet.On("FindByOrderCodeForUpdate", mock.Anything, orderCode).Return(settled, nil)

	err := h.svc.Payment.HandleWebhook(context.Background(), paidPayload())

	require.NoError(t, err)
	assert.Empty(t, h.m.user.Calls)
	assert.Empty(t, h.publisher.published())
}

func TestHandleWebhook_TopUpFailedLeavesBalance(t *testing.T) {
	h := newHarness(t)
	h.gateway.data = &payos.WebhookData{OrderCode: orderCode, Amount: 50000, Code: "01"}

	h.m.wallet.On("FindByOrderCodeForUpdate", mock.Anything, orderCode).Return(pendingTopUp(50000), nil)
	h.m.wallet.On("FailPending", mock.Anything, int64(3)).Return(nil)

	payload := &payos.WebhookPayload{Code: "01", Desc: "cancelled", Success: false}
	err := h.svc.Payment.HandleWebhook(context.Background(), payload)

	require.NoError(t, err)
	assert.Empty(t, h.m.user.Calls)
	assert.Empty(t, h.publisher.published())
}

func TestHandleWebhook_SignedDataDecidesOutcome(t *testing.T) {
	t.Run("envelope says failed, signed data says paid", func(t *testing.T) {
		h := newHarness(t)
		h.gateway.data = &payos.WebhookData{Code: "00", OrderCode: orderCode, Amount: 50000, Reference: "FT2601"}

		h.m.wallet.On("FindByOrderCodeForUpdate", mock.Anything, orderCode).Return(pendingTopUp(50000), nil)
		h.m.user.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(userWithBalance(10, 0), nil)
		h.m.wallet.On("CompletePending", mock.Anything, mock.AnythingOfType("*entity.WalletTransaction")).Return(nil)
		h.m.user.On("UpdateWalletBalance", mock.Anything, int64(10), decimalEq(vnd(50000))).Return(nil)

		payload := &payos.WebhookPayload{Code: "01", Desc: "cancelled", Success: false}
		err := h.svc.Payment.HandleWebhook(context.Background(), payload)

		require.NoError(t, err)
		h.m.wallet.AssertNotCalled(t, "FailPending", mock.Anything, mock.Anything)
	})

	t.Run("envelope says paid, signed data says failed", func(t *testing.T) {
		h := newHarness(t)
		h.gateway.data = &payos.WebhookData{Code: "01", OrderCode: orderCode, Amount: 50000}

		h.m.wallet.On("FindByOrderCodeForUpdate", mock.Anything, orderCode).Return(pendingTopUp(50000), nil)
		h.m.wallet.On("FailPending", mock.Anything, int64(3)).Return(nil)

		err := h.svc.Payment.HandleWebhook(context.Background(), paidPayload())

		require.NoError(t, err)
		assert.Empty(t, h.m.user.Calls)
		assert.Empty(t, h.publisher.published())
	})
}

func TestHandleWebhook_PaymentHoldsEscrow(t *testing.T) {
	h := newHarness(t)
	h.gateway.data = &payos.WebhookData{Code: "00", OrderCode: orderCode, Amount: 200000, Reference: "FT2602"}

	h.m.wallet.On("FindByOrderCodeForUpdate", mock.Anything, orderCode).Return(nil, nil)
	h.m.payment.On("FindByCodeForUpdate", mock.Anything, orderCode).Return(pendingPayment(), nil)
	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPending), nil)
	h.m.payment.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
		return p.Status == entity.PaymentStatusPaid &&
			*p.TransactionID == "FT2602" &&
			p.ProcessingFee.Equal(vnd(4000)) &&
			p.NetAmount.Equal(vnd(196000))
	})).Return(nil)
	h.m.booking.On("UpdatePaymentStatus", mock.Anything, int64(100), entity.BookingPaymentPaid).Return(nil)
	h.m.escrow.On("FindHeldByBookingID", mock.Anything, int64(100)).Return(nil, nil)
	h.m.escrow.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.EscrowTransaction) bool {
		return e.Status == entity.EscrowStatusHeld &&
			e.PaymentID == 900 &&
			e.CosplayerID == 7 &&
			e.Amount.Equal(vnd(200000))
	})).Return(nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)

	err := h.svc.Payment.HandleWebhook(context.Background(), paidPayload())

	require.NoError(t, err)
	assert.Equal(t, []string{"payment.paid", "payment.paid"}, h.publisher.published())
}

func TestHandleWebhook_DuplicatePaymentIsNoop(t *testing.T) {
	h := newHarness(t)
	h.gateway.data = &payos.WebhookData{Code: "00", OrderCode: orderCode, Amount: 200000}

	paid := pendingPayment()
	paid.Status = entity.PaymentStatusPaid
	h.m.wallet.On("FindByOrderCodeForUpdate", mock.Anything, orderCode).Return(nil, nil)
	h.m.payment.On("FindByCodeForUpdate", mock.Anything, orderCode).Return(paid, nil)

	err := h.svc.Payment.HandleWebhook(context.Background(), paidPayload())

	require.NoError(t, err)
	assert.Empty(t, h.m.escrow.Calls)
	assert.Empty(t, h.m.booking.Calls)
	assert.Empty(t, h.publisher.published())
}

func TestHandleWebhook_AmountMismatchRejected(t *testing.T) {
	h := newHarness(t)
	h.gateway.data = &payos.WebhookData{Code: "00", OrderCode: orderCode, Amount: 150000}

	h.m.wallet.On("FindByOrderCodeForUpdate", mock.Anything, orderCode).Return(nil, nil)
	h.m.payment.On("FindByCodeForUpdate", mock.Anything, orderCode).Return(pendingPayment(), nil)

	err := h.svc.Payment.HandleWebhook(context.Background(), paidPayload())

	require.ErrorIs(t, err, utils.ErrValidation)
	h.m.payment.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Empty(t, h.m.escrow.Calls)
}

func TestHandleWebhook_UnknownOrder(t *testing.T) {
	h := newHarness(t)
	h.gateway.data = &payos.WebhookData{Code: "00", OrderCode: 42, Amount: 1000}

	h.m.wallet.On("FindByOrderCodeForUpdate", mock.Anything, int64(42)).Return(nil, nil)
	h.m.payment.On("FindByCodeForUpdate", mock.Anything, int64(42)).Return(nil, nil)

	err := h.svc.Payment.HandleWebhook(context.Background(), paidPayload())

	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestHandleWebhook_LatePaymentRefundedToWallet(t *testing.T) {
	h := newHarness(t)
	h.gateway.data = &payos.WebhookData{Code: "00", OrderCode: orderCode, Amount: 200000, Reference: "FT2603"}

	h.m.wallet.On("FindByOrderCodeForUpdate", mock.Anything, orderCode).Return(nil, nil)
	h.m.payment.On("FindByCodeForUpdate", mock.Anything, orderCode).Return(pendingPayment(), nil)
	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusCancelled, entity.BookingPaymentPending), nil)
	h.m.payment.On("Update", mock.Anything, mock.AnythingOfType("*entity.Payment")).Return(nil)
	h.m.user.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(userWithBalance(10, 0), nil)
	h.m.wallet.On("Create", mock.Anything, mock.MatchedBy(func(w *entity.WalletTransaction) bool {
		return w.Type == entity.WalletTxRefund &&
			w.Amount.Equal(vnd(200000)) &&
			*w.ReferenceID == "1767225600000123"
	})).Return(nil)
	h.m.user.On("UpdateWalletBalance", mock.Anything, int64(10), decimalEq(vnd(200000))).Return(nil)

	err := h.svc.Payment.HandleWebhook(context.Background(), paidPayload())

	require.NoError(t, err)
	assert.Empty(t, h.m.escrow.Calls)
	h.m.booking.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{"escrow.refunded"}, h.publisher.published())
}

func TestCreateCheckout_Success(t *testing.T) {
	h := newHarness(t)
	h.gateway.link = &payos.CheckoutResult{PaymentLinkID: "plink-1", CheckoutURL: "https://pay.example/checkout/1"}

	h.m.booking.On("FindByID", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPending), nil)
	h.m.payment.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
		return p.Status == entity.PaymentStatusPending && p.Method == entity.PaymentMethodPayOS
	})).Return(nil)
	h.m.payment.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
		return p.CheckoutURL != nil && *p.CheckoutURL == "https://pay.example/checkout/1"
	})).Return(nil)

	resp, err := h.svc.Payment.CreateCheckout(context.Background(), customer, 100)

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/checkout/1", resp.CheckoutURL)
	assert.True(t, resp.Amount.Equal(vnd(200000)))
	require.Len(t, h.gateway.links, 1)
	assert.Equal(t, resp.OrderCode, h.gateway.links[0])
}

func TestCreateCheckout_GatewayDownMarksPaymentFailed(t *testing.T) {
	h := newHarness(t)
	h.gateway.linkErr = errors.New("connection refused")

	h.m.booking.On("FindByID", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusPending, entity.BookingPaymentPending), nil)
	h.m.payment.On("Create", mock.Anything, mock.AnythingOfType("*entity.Payment")).Return(nil)
	h.m.payment.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
		return p.Status == entity.PaymentStatusFailed
	})).Return(nil)

	_, err := h.svc.Payment.CreateCheckout(context.Background(), customer, 100)

	require.ErrorIs(t, err, utils.ErrExternal)
}

func TestCreateCheckout_AlreadyPaid(t *testing.T) {
	h := newHarness(t)

	h.m.booking.On("FindByID", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPaid), nil)

	_, err := h.svc.Payment.CreateCheckout(context.Background(), customer, 100)

	require.ErrorIs(t, err, utils.ErrConflict)
	assert.Empty(t, h.gateway.links)
}

func TestPayWithWallet_Success(t *testing.T) {
	h := newHarness(t)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPending), nil)
	h.m.user.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(userWithBalance(10, 300000), nil)
	h.m.wallet.On("Create", mock.Anything, mock.MatchedBy(func(w *entity.WalletTransaction) bool {
		return w.Type == entity.WalletTxDebit && w.BalanceAfter.Equal(vnd(100000))
	})).Return(nil)
	h.m.user.On("UpdateWalletBalance", mock.Anything, int64(10), decimalEq(vnd(100000))).Return(nil)
	h.m.payment.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
		return p.Method == entity.PaymentMethodWallet && p.Status == entity.PaymentStatusPaid
	})).Return(nil)
	h.m.booking.On("UpdatePaymentStatus", mock.Anything, int64(100), entity.BookingPaymentPaid).Return(nil)
	h.m.escrow.On("FindHeldByBookingID", mock.Anything, int64(100)).Return(nil, nil)
	h.m.escrow.On("Create", mock.Anything, mock.AnythingOfType("*entity.EscrowTransaction")).Return(nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)

	resp, err := h.svc.Payment.PayWithWallet(context.Background(), customer, 100)

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, resp.Status)
	assert.True(t, resp.ProcessingFee.Equal(vnd(4000)))
}

func TestPayWithWallet_InsufficientFunds(t *testing.T) {
	h := newHarness(t)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPending), nil)
	h.m.user.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(userWithBalance(10, 50000), nil)

	_, err := h.svc.Payment.PayWithWallet(context.Background(), customer, 100)

	require.ErrorIs(t, err, usecase.ErrInsufficientFunds)
	assert.ErrorIs(t, err, utils.ErrValidation)
	assert.Empty(t, h.m.payment.Calls)
	assert.Empty(t, h.m.escrow.Calls)
}

func TestPayWithWallet_OtherCustomerForbidden(t *testing.T) {
	h := newHarness(t)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPending), nil)

	stranger := usecase.Actor{UserID: 99, Role: entity.RoleCustomer}
	_, err := h.svc.Payment.PayWithWallet(context.Background(), stranger, 100)

	require.ErrorIs(t, err, utils.ErrForbidden)
	assert.Empty(t, h.m.user.Calls)
}
