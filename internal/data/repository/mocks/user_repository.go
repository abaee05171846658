package mocks

import (
	"context"

	"cosplay-booking/internal/data/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	register(&m.Mock, t)
	return m
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	ret := m.Called(ctx, id)
	return ptr[entity.User](ret, 0), ret.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ret := m.Called(ctx, email)
	return ptr[entity.User](ret, 0), ret.Error(1)
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	ret := m.Called(ctx, username)
	return ptr[entity.User](ret, 0), ret.Error(1)
}

func (m *UserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	ret := m.Called(ctx, limit, offset)
	return slice[entity.User](ret, 0), ret.Error(1)
}

func (m *UserRepository) CountAll(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)
	return int64At(ret, 0), ret.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.User, error) {
	ret := m.Called(ctx, id)
	return ptr[entity.User](ret, 0), ret.Error(1)
}

func (m *UserRepository) UpdateWalletBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	return m.Called(ctx, id, balance).Error(0)
}
