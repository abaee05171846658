package mocks

import (
	"context"

	"cosplay-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type EscrowRepository struct {
	mock.Mock
}

func NewEscrowRepository(t testingT) *EscrowRepository {
	m := &EscrowRepository{}
	register(&m.Mock, t)
	return m
}

func (m *EscrowRepository) Create(ctx context.Context, escrow *entity.EscrowTransaction) error {
	return m.Called(ctx, escrow).Error(0)
}

func (m *EscrowRepository) FindByID(ctx context.Context, id int64) (*entity.EscrowTransaction, error) {
	ret := m.Called(ctx, id)
	return ptr[entity.EscrowTransaction](ret, 0), ret.Error(1)
}

func (m *EscrowRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.EscrowTransaction, error) {
	ret := m.Called(ctx, bookingID)
	return slice[entity.EscrowTransaction](ret, 0), ret.Error(1)
}

func (m *EscrowRepository) FindAll(ctx context.Context, status *string, limit, offset int) ([]*entity.EscrowTransaction, error) {
	ret := m.Called(ctx, status, limit, offset)
	return slice[entity.EscrowTransaction](ret, 0), ret.Error(1)
}

func (m *EscrowRepository) CountAll(ctx context.Context, status *string) (int64, error) {
	ret := m.Called(ctx, status)
	return int64At(ret, 0), ret.Error(1)
}

func (m *EscrowRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.EscrowTransaction, error) {
	ret := m.Called(ctx, id)
	return ptr[entity.EscrowTransaction](ret, 0), ret.Error(1)
}

func (m *EscrowRepository) FindHeldByBookingID(ctx context.Context, bookingID int64) (*entity.EscrowTransaction, error) {
	ret := m.Called(ctx, bookingID)
	return ptr[entity.EscrowTransaction](ret, 0), ret.Error(1)
}

func (m *EscrowRepository) MarkReleased(ctx context.Context, escrow *entity.EscrowTransaction) error {
	return m.Called(ctx, escrow).Error(0)
}

func (m *EscrowRepository) MarkRefunded(ctx context.Context, escrow *entity.EscrowTransaction) error {
	return m.Called(ctx, escrow).Error(0)
}
