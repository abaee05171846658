package mocks

import (
	"context"

	"cosplay-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type OTPRepository struct {
	mock.Mock
}

func NewOTPRepository(t testingT) *OTPRepository {
	m := &OTPRepository{}
	register(&m.Mock, t)
	return m
}

func (m *OTPRepository) Create(ctx context.Context, otp *entity.OTP) error {
	return m.Called(ctx, otp).Error(0)
}

func (m *OTPRepository) FindValidOTP(ctx context.Context, email, otpCode string, otpType entity.OTPType) (*entity.OTP, error) {
	ret := m.Called(ctx, email, otpCode, otpType)
	return ptr[entity.OTP](ret, 0), ret.Error(1)
}

func (m *OTPRepository) MarkAsUsed(ctx context.Context, otpID int64) error {
	return m.Called(ctx, otpID).Error(0)
}
