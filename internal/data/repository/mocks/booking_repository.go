package mocks

import (
	"context"
	"time"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/data/repository"

	"github.com/stretchr/testify/mock"
)

type BookingRepository struct {
	mock.Mock
}

func NewBookingRepository(t testingT) *BookingRepository {
	m := &BookingRepository{}
	register(&m.Mock, t)
	return m
}

func (m *BookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *BookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	ret := m.Called(ctx, id)
	return ptr[entity.Booking](ret, 0), ret.Error(1)
}

func (m *BookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	ret := m.Called(ctx, code)
	return ptr[entity.Booking](ret, 0), ret.Error(1)
}

func (m *BookingRepository) FindAll(ctx context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	ret := m.Called(ctx, filter, limit, offset)
	return slice[entity.Booking](ret, 0), ret.Error(1)
}

func (m *BookingRepository) CountAll(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	ret := m.Called(ctx, filter)
	return int64At(ret, 0), ret.Error(1)
}

func (m *BookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *BookingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error) {
	ret := m.Called(ctx, id)
	return ptr[entity.Booking](ret, 0), ret.Error(1)
}

func (m *BookingRepository) HasOverlap(ctx context.Context, cosplayerID int64, start, end time.Time) (bool, error) {
	ret := m.Called(ctx, cosplayerID, start, end)
	return ret.Bool(0), ret.Error(1)
}

func (m *BookingRepository) FindActiveInRange(ctx context.Context, cosplayerID int64, from, to time.Time) ([]*entity.Booking, error) {
	ret := m.Called(ctx, cosplayerID, from, to)
	return slice[entity.Booking](ret, 0), ret.Error(1)
}

func (m *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status entity.BookingPaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *BookingRepository) FindConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]*entity.Booking, error) {
	ret := m.Called(ctx, from, to)
	return slice[entity.Booking](ret, 0), ret.Error(1)
}

func (m *BookingRepository) FindConfirmedPaidEndedBefore(ctx context.Context, cutoff time.Time) ([]*entity.Booking, error) {
	ret := m.Called(ctx, cutoff)
	return slice[entity.Booking](ret, 0), ret.Error(1)
}
