package repository

import (
	"cosplay-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	OTP          OTPRepository
	Cosplayer    CosplayerRepository
	Booking      BookingRepository
	Payment      PaymentRepository
	Escrow       EscrowRepository
	Wallet       WalletRepository
	Review       ReviewRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		OTP:          NewOTPRepository(db, log),
		Cosplayer:    NewCosplayerRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Escrow:       NewEscrowRepository(db, log),
		Wallet:       NewWalletRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
