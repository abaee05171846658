package mocks

import (
	"context"

	"cosplay-booking/internal/data/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type WalletRepository struct {
	mock.Mock
}

func NewWalletRepository(t testingT) *WalletRepository {
	m := &WalletRepository{}
	register(&m.Mock, t)
	return m
}

func (m *WalletRepository) Create(ctx context.Context, tx *entity.WalletTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *WalletRepository) FindByOrderCodeForUpdate(ctx context.Context, orderCode int64) (*entity.WalletTransaction, error) {
	ret := m.Called(ctx, orderCode)
	return ptr[entity.WalletTransaction](ret, 0), ret.Error(1)
}

func (m *WalletRepository) FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.WalletTransaction, error) {
	ret := m.Called(ctx, userID, limit, offset)
	return slice[entity.WalletTransaction](ret, 0), ret.Error(1)
}

func (m *WalletRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	ret := m.Called(ctx, userID)
	return int64At(ret, 0), ret.Error(1)
}

func (m *WalletRepository) CompletePending(ctx context.Context, tx *entity.WalletTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *WalletRepository) FailPending(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *WalletRepository) SignedSum(ctx context.Context, userID int64) (decimal.Decimal, error) {
	ret := m.Called(ctx, userID)
	sum, _ := ret.Get(0).(decimal.Decimal)
	return sum, ret.Error(1)
}
