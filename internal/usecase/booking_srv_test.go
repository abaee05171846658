package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/data/repository"
	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var customer = usecase.Actor{UserID: 10, Role: entity.RoleCustomer}

func slot(date, hhmm string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, time.Local)
	return t
}

func timeEq(want time.Time) any {
	return mock.MatchedBy(func(got time.Time) bool { return got.Equal(want) })
}

func TestCreateBooking_Success(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	date := futureDate(3)

	h.m.cosplayer.On("FindByIDForUpdate", mock.Anything, int64(7)).Return(newCosplayer(), nil)
	h.m.booking.On("HasOverlap", mock.Anything, int64(7), timeEq(slot(date, "14:00")), timeEq(slot(date, "16:00"))).Return(false, nil)
	h.m.booking.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.CustomerID == 10 &&
			b.Status == entity.BookingStatusPending &&
			b.PaymentStatus == entity.BookingPaymentPending &&
			b.DurationMinutes == 120
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Booking).ID = 100
	}).Return(nil)

	resp, err := h.svc.Booking.CreateBooking(ctx, customer, &request.CreateBookingRequest{
		CosplayerID: 7,
		ServiceType: "photoshoot",
		Date:        date,
		StartTime:   "14:00",
		EndTime:     "16:00",
		Location:    "Jakarta Convention Center",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.True(t, resp.TotalPrice.Equal(vnd(200000)))
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, 1, h.tx.calls)
	assert.Contains(t, h.publisher.published(), string(entity.NotifBookingCreated))
}

func TestCreateBooking_OverlapRejected(t *testing.T) {
	h := newHarness(t)
	date := futureDate(3)

	// 15:00-17:00 sudah ada, minta 14:00-16:00
	h.m.cosplayer.On("FindByIDForUpdate", mock.Anything, int64(7)).Return(newCosplayer(), nil)
	h.m.booking.On("HasOverlap", mock.Anything, int64(7), timeEq(slot(date, "14:00")), timeEq(slot(date, "16:00"))).Return(true, nil)

	resp, err := h.svc.Booking.CreateBooking(context.Background(), customer, &request.CreateBookingRequest{
		CosplayerID: 7,
		ServiceType: "photoshoot",
		Date:        date,
		StartTime:   "14:00",
		EndTime:     "16:00",
		Location:    "Jakarta Convention Center",
	})

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, utils.ErrConflict))
	h.m.booking.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_RejectsBadWindows(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		start, end string
	}{
		{"start after end", futureDate(3), "16:00", "14:00"},
		{"zero length", futureDate(3), "14:00", "14:00"},
		{"in the past", time.Now().AddDate(0, 0, -1).Format("2006-01-02"), "14:00", "16:00"},
		{"before opening", futureDate(3), "06:00", "09:00"},
		{"after closing", futureDate(3), "21:00", "23:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			_, err := h.svc.Booking.CreateBooking(context.Background(), customer, &request.CreateBookingRequest{
				CosplayerID: 7,
				ServiceType: "photoshoot",
				Date:        tt.date,
				StartTime:   tt.start,
				EndTime:     tt.end,
				Location:    "Bandung",
			})

			assert.True(t, errors.Is(err, utils.ErrValidation), "got %v", err)
			assert.Equal(t, 0, h.tx.calls)
		})
	}
}

func TestCreateBooking_CannotBookSelf(t *testing.T) {
	h := newHarness(t)
	self := usecase.Actor{UserID: 20, Role: entity.RoleCosplayer}

	h.m.cosplayer.On("FindByIDForUpdate", mock.Anything, int64(7)).Return(newCosplayer(), nil)

	_, err := h.svc.Booking.CreateBooking(context.Background(), self, &request.CreateBookingRequest{
		CosplayerID: 7,
		ServiceType: "photoshoot",
		Date:        futureDate(2),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Location:    "Bandung",
	})

	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestConfirmBooking_OnlyBookedCosplayer(t *testing.T) {
	h := newHarness(t)
	booking := newBooking(entity.BookingStatusPending, entity.BookingPaymentPending)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).Return(booking, nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)

	_, err := h.svc.Booking.ConfirmBooking(context.Background(), customer, 100)

	assert.True(t, errors.Is(err, utils.ErrForbidden))
	h.m.booking.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestConfirmBooking_Success(t *testing.T) {
	h := newHarness(t)
	booking := newBooking(entity.BookingStatusPending, entity.BookingPaymentPending)
	cosplayerUser := usecase.Actor{UserID: 20, Role: entity.RoleCosplayer}

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).Return(booking, nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)
	h.m.booking.On("Update", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.Status == entity.BookingStatusConfirmed
	})).Return(nil)

	resp, err := h.svc.Booking.ConfirmBooking(context.Background(), cosplayerUser, 100)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
}

func TestCompleteBooking_ReleasesHeldEscrowToCosplayer(t *testing.T) {
	h := newHarness(t)
	booking := newBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPaid)
	escrow := heldEscrow(200000)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).Return(booking, nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)
	h.m.booking.On("Update", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.Status == entity.BookingStatusCompleted && b.CompletedAt != nil
	})).Return(nil)
	h.m.escrow.On("FindHeldByBookingID", mock.Anything, int64(100)).Return(escrow, nil)
	h.m.escrow.On("MarkReleased", mock.Anything, escrow).Return(nil)

	// wallet cosplayer (user 20): 50.000 + 200.000
	h.m.user.On("FindByIDForUpdate", mock.Anything, int64(20)).Return(userWithBalance(20, 50000), nil)
	h.m.wallet.On("Create", mock.Anything, mock.MatchedBy(func(w *entity.WalletTransaction) bool {
		return w.UserID == 20 &&
			w.Type == entity.WalletTxEscrowRelease &&
			w.Amount.Equal(vnd(200000)) &&
			w.BalanceAfter.Equal(vnd(250000)) &&
			*w.ReferenceID == escrow.TransactionCode
	})).Return(nil)
	h.m.user.On("UpdateWalletBalance", mock.Anything, int64(20), decimalEq(vnd(250000))).Return(nil)

	resp, err := h.svc.Booking.CompleteBooking(context.Background(), customer, 100)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCompleted, resp.Status)
	assert.Equal(t, entity.EscrowStatusReleased, escrow.Status)
	assert.NotNil(t, escrow.ReleasedAt)
}

func TestCompleteBooking_RequiresPayment(t *testing.T) {
	h := newHarness(t)
	booking := newBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPending)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).Return(booking, nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)

	_, err := h.svc.Booking.CompleteBooking(context.Background(), usecase.SystemActor, 100)

	assert.True(t, errors.Is(err, utils.ErrConflict))
	h.m.escrow.AssertNotCalled(t, "FindHeldByBookingID", mock.Anything, mock.Anything)
}

func TestCompleteBooking_InvalidTransition(t *testing.T) {
	h := newHarness(t)
	booking := newBooking(entity.BookingStatusPending, entity.BookingPaymentPaid)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).Return(booking, nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)

	_, err := h.svc.Booking.CompleteBooking(context.Background(), customer, 100)

	assert.True(t, errors.Is(err, utils.ErrConflict))
}

func TestCancelBooking_PendingUnpaidDoesNoEscrowWork(t *testing.T) {
	h := newHarness(t)
	booking := newBooking(entity.BookingStatusPending, entity.BookingPaymentPending)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).Return(booking, nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)
	h.m.booking.On("Update", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.Status == entity.BookingStatusCancelled &&
			b.PaymentStatus == entity.BookingPaymentPending &&
			*b.CancellationReason == "change of plans"
	})).Return(nil)

	resp, err := h.svc.Booking.CancelBooking(context.Background(), customer, 100, &request.CancelBookingRequest{Reason: "change of plans"})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Empty(t, h.m.escrow.Calls)
	assert.Empty(t, h.m.wallet.Calls)
}

func TestCancelBooking_ConfirmedWithHeldEscrowRefundsFullAmount(t *testing.T) {
	h := newHarness(t)
	booking := newBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPaid)
	escrow := heldEscrow(200000)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).Return(booking, nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)
	h.m.escrow.On("FindHeldByBookingID", mock.Anything, int64(100)).Return(escrow, nil)
	h.m.escrow.On("MarkRefunded", mock.Anything, escrow).Return(nil)
	h.m.user.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(userWithBalance(10, 0), nil)
	h.m.wallet.On("Create", mock.Anything, mock.MatchedBy(func(w *entity.WalletTransaction) bool {
		return w.UserID == 10 && w.Type == entity.WalletTxRefund && w.Amount.Equal(vnd(200000))
	})).Return(nil)
	h.m.user.On("UpdateWalletBalance", mock.Anything, int64(10), decimalEq(vnd(200000))).Return(nil)
	h.m.booking.On("Update", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.Status == entity.BookingStatusCancelled && b.PaymentStatus == entity.BookingPaymentRefunded
	})).Return(nil)

	cosplayerUser := usecase.Actor{UserID: 20, Role: entity.RoleCosplayer}
	resp, err := h.svc.Booking.CancelBooking(context.Background(), cosplayerUser, 100, &request.CancelBookingRequest{Reason: "sick"})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingPaymentRefunded, resp.PaymentStatus)
	assert.Equal(t, entity.EscrowStatusRefunded, escrow.Status)
	assert.Equal(t, "sick", *escrow.RefundReason)
	assert.Contains(t, h.publisher.published(), string(entity.NotifEscrowRefunded))
}

func TestCancelBooking_StrangerForbidden(t *testing.T) {
	h := newHarness(t)
	booking := newBooking(entity.BookingStatusPending, entity.BookingPaymentPending)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).Return(booking, nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)

	stranger := usecase.Actor{UserID: 99, Role: entity.RoleCustomer}
	_, err := h.svc.Booking.CancelBooking(context.Background(), stranger, 100, &request.CancelBookingRequest{Reason: "nope"})

	assert.True(t, errors.Is(err, utils.ErrForbidden))
}

func TestCancelBooking_TerminalIsConflict(t *testing.T) {
	h := newHarness(t)
	booking := newBooking(entity.BookingStatusCompleted, entity.BookingPaymentPaid)

	h.m.booking.On("FindByIDForUpdate", mock.Anything, int64(100)).Return(booking, nil)
	h.m.cosplayer.On("FindByID", mock.Anything, int64(7)).Return(newCosplayer(), nil)

	_, err := h.svc.Booking.CancelBooking(context.Background(), customer, 100, &request.CancelBookingRequest{Reason: "too late"})

	assert.True(t, errors.Is(err, utils.ErrConflict))
}

func TestListMyBookings_AsCosplayer(t *testing.T) {
	h := newHarness(t)
	cosplayerUser := usecase.Actor{UserID: 20, Role: entity.RoleCosplayer}

	byCosplayer := mock.MatchedBy(func(f repository.BookingFilter) bool {
		return f.CosplayerID != nil && *f.CosplayerID == 7 && f.CustomerID == nil
	})

	h.m.cosplayer.On("FindByUserID", mock.Anything, int64(20)).Return(newCosplayer(), nil)
	h.m.booking.On("FindAll", mock.Anything, byCosplayer, 10, 0).
		Return([]*entity.Booking{newBooking(entity.BookingStatusPending, entity.BookingPaymentPending)}, nil)
	h.m.booking.On("CountAll", mock.Anything, byCosplayer).Return(int64(1), nil)

	resp, err := h.svc.Booking.ListMyBookings(context.Background(), cosplayerUser, &request.BookingListRequest{As: "cosplayer"})

	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.Page)
}
