package usecase

import (
	"cosplay-booking/internal/data/repository"
	"cosplay-booking/pkg/database"
	"cosplay-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the collaborators outside the database.
type Deps struct {
	Tx        database.Transactor
	Gateway   PaymentGateway
	Publisher EventPublisher // nil: events are only logged
	Redis     redis.Cmdable  // nil: the sweep is not wired
}

type Service struct {
	Auth         AuthService
	User         UserService
	Cosplayer    CosplayerService
	Booking      BookingService
	Payment      PaymentService
	Wallet       WalletService
	Escrow       EscrowService
	Review       ReviewService
	Notification NotificationService
	Sweep        SweepService
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	notifier := NewNotificationService(repo.Notification, deps.Publisher, log)
	wallet := NewWalletService(repo, deps.Tx, deps.Gateway, log)
	escrow := NewEscrowService(repo, deps.Tx, wallet, notifier, log)
	booking := NewBookingService(repo, deps.Tx, escrow, notifier, config.Booking, log)

	svc := &Service{
		Auth:         NewAuthService(repo, deps.Tx, notifier, config, log),
		User:         NewUserService(repo.User, log),
		Cosplayer:    NewCosplayerService(repo, log),
		Booking:      booking,
		Payment:      NewPaymentService(repo, deps.Tx, deps.Gateway, wallet, escrow, notifier, config.Payment, log),
		Wallet:       wallet,
		Escrow:       escrow,
		Review:       NewReviewService(repo, deps.Tx, log),
		Notification: notifier,
	}

	if deps.Redis != nil {
		svc.Sweep = NewSweepService(repo, deps.Redis, booking, notifier, config.Booking, log)
	}

	return svc
}
