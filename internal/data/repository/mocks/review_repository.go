package mocks

import (
	"context"

	"cosplay-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type ReviewRepository struct {
	mock.Mock
}

func NewReviewRepository(t testingT) *ReviewRepository {
	m := &ReviewRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepository) FindByBookingID(ctx context.Context, bookingID int64) (*entity.Review, error) {
	ret := m.Called(ctx, bookingID)
	return ptr[entity.Review](ret, 0), ret.Error(1)
}

func (m *ReviewRepository) FindByCosplayerID(ctx context.Context, cosplayerID int64, limit, offset int) ([]*entity.Review, error) {
	ret := m.Called(ctx, cosplayerID, limit, offset)
	return slice[entity.Review](ret, 0), ret.Error(1)
}

func (m *ReviewRepository) CountByCosplayerID(ctx context.Context, cosplayerID int64) (int64, error) {
	ret := m.Called(ctx, cosplayerID)
	return int64At(ret, 0), ret.Error(1)
}

func (m *ReviewRepository) GetCosplayerReviewStats(ctx context.Context, cosplayerID int64) (float64, int64, error) {
	ret := m.Called(ctx, cosplayerID)
	rating, _ := ret.Get(0).(float64)
	return rating, int64At(ret, 1), ret.Error(2)
}
