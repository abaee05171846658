package mocks

import (
	"context"

	"cosplay-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type PaymentRepository struct {
	mock.Mock
}

func NewPaymentRepository(t testingT) *PaymentRepository {
	m := &PaymentRepository{}
	register(&m.Mock, t)
	return m
}

func (m *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *PaymentRepository) FindByID(ctx context.Context, id int64) (*entity.Payment, error) {
	ret := m.Called(ctx, id)
	return ptr[entity.Payment](ret, 0), ret.Error(1)
}

func (m *PaymentRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.Payment, error) {
	ret := m.Called(ctx, bookingID)
	return slice[entity.Payment](ret, 0), ret.Error(1)
}

func (m *PaymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *PaymentRepository) FindByCodeForUpdate(ctx context.Context, code int64) (*entity.Payment, error) {
	ret := m.Called(ctx, code)
	return ptr[entity.Payment](ret, 0), ret.Error(1)
}
