package mocks

import (
	"context"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/data/repository"

	"github.com/stretchr/testify/mock"
)

type CosplayerRepository struct {
	mock.Mock
}

func NewCosplayerRepository(t testingT) *CosplayerRepository {
	m := &CosplayerRepository{}
	register(&m.Mock, t)
	return m
}

func (m *CosplayerRepository) Create(ctx context.Context, cosplayer *entity.Cosplayer) error {
	return m.Called(ctx, cosplayer).Error(0)
}

func (m *CosplayerRepository) FindByID(ctx context.Context, id int64) (*entity.Cosplayer, error) {
	ret := m.Called(ctx, id)
	return ptr[entity.Cosplayer](ret, 0), ret.Error(1)
}

func (m *CosplayerRepository) FindByUserID(ctx context.Context, userID int64) (*entity.Cosplayer, error) {
	ret := m.Called(ctx, userID)
	return ptr[entity.Cosplayer](ret, 0), ret.Error(1)
}

func (m *CosplayerRepository) FindAll(ctx context.Context, offset, limit int, filter repository.CosplayerFilter) ([]*entity.Cosplayer, error) {
	ret := m.Called(ctx, offset, limit, filter)
	return slice[entity.Cosplayer](ret, 0), ret.Error(1)
}

func (m *CosplayerRepository) CountAll(ctx context.Context, filter repository.CosplayerFilter) (int64, error) {
	ret := m.Called(ctx, filter)
	return int64At(ret, 0), ret.Error(1)
}

func (m *CosplayerRepository) Update(ctx context.Context, cosplayer *entity.Cosplayer) error {
	return m.Called(ctx, cosplayer).Error(0)
}

func (m *CosplayerRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Cosplayer, error) {
	ret := m.Called(ctx, id)
	return ptr[entity.Cosplayer](ret, 0), ret.Error(1)
}

func (m *CosplayerRepository) UpdateRating(ctx context.Context, id int64, rating float64, totalReviews int) error {
	return m.Called(ctx, id, rating, totalReviews).Error(0)
}
