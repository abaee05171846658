package usecase_test

import (
	"context"
	"testing"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/dto/request"
	"cosplay-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateReview_UpdatesCosplayerRating(t *testing.T) {
	h := newHarness(t)

	h.m.booking.On("FindByID", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusCompleted, entity.BookingPaymentPaid), nil)
	h.m.review.On("FindByBookingID", mock.Anything, int64(100)).Return(nil, nil)
	h.m.cosplayer.On("FindByIDForUpdate", mock.Anything, int64(7)).Return(newCosplayer(), nil)
	h.m.review.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Review) bool {
		return r.Rating == 4 && r.CosplayerID == 7 && r.CustomerID == 10
	})).Return(nil)
	h.m.review.On("GetCosplayerReviewStats", mock.Anything, int64(7)).Return(4.5, int64(2), nil)
	h.m.cosplayer.On("UpdateRating", mock.Anything, int64(7), 4.5, 2).Return(nil)

	resp, err := h.svc.Review.CreateReview(context.Background(), customer, &request.CreateReviewRequest{BookingID: 100, Rating: 4})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)
}

func TestCreateReview_RequiresCompletedBooking(t *testing.T) {
	h := newHarness(t)

	h.m.booking.On("FindByID", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPaid), nil)

	_, err := h.svc.Review.CreateReview(context.Background(), customer, &request.CreateReviewRequest{BookingID: 100, Rating: 5})

	require.ErrorIs(t, err, utils.ErrConflict)
	assert.Empty(t, h.m.review.Calls)
}

func TestCreateReview_OncePerBooking(t *testing.T) {
	h := newHarness(t)

	h.m.booking.On("FindByID", mock.Anything, int64(100)).
		Return(newBooking(entity.BookingStatusCompleted, entity.BookingPaymentPaid), nil)
	h.m.review.On("FindByBookingID", mock.Anything, int64(100)).Return(&entity.Review{BookingID: 100, Rating: 3}, nil)

	_, err := h.svc.Review.CreateReview(context.Background(), customer, &request.CreateReviewRequest{BookingID: 100, Rating: 5})

	require.ErrorIs(t, err, utils.ErrConflict)
	assert.Equal(t, 0, h.tx.calls)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Review.CreateReview(context.Background(), customer, &request.CreateReviewRequest{BookingID: 100, Rating: 6})

	require.ErrorIs(t, err, utils.ErrValidation)
	assert.Empty(t, h.m.booking.Calls)
}
