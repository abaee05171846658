package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/data/repository"
	"cosplay-booking/internal/data/repository/mocks"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/payos"
	"cosplay-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// fakeTx runs fn inline; the mocks stand in for the database.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeGateway struct {
	link      *payos.CheckoutResult
	linkErr   error
	data      *payos.WebhookData
	verifyErr error
	links     []int64
}

func (g *fakeGateway) CreatePaymentLink(_ context.Context, orderCode, _ int64, _ string) (*payos.CheckoutResult, error) {
	g.links = append(g.links, orderCode)
	if g.linkErr != nil {
		return nil, g.linkErr
	}
	return g.link, nil
}

func (g *fakeGateway) VerifyWebhook(_ *payos.WebhookPayload) (*payos.WebhookData, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.data, nil
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *fakePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type repoMocks struct {
	user         *mocks.UserRepository
	session      *mocks.SessionRepository
	otp          *mocks.OTPRepository
	cosplayer    *mocks.CosplayerRepository
	booking      *mocks.BookingRepository
	payment      *mocks.PaymentRepository
	escrow       *mocks.EscrowRepository
	wallet       *mocks.WalletRepository
	review       *mocks.ReviewRepository
	notification *mocks.NotificationRepository
}

func newRepoMocks(t *testing.T) (*repository.Repository, *repoMocks) {
	m := &repoMocks{
		user:         mocks.NewUserRepository(t),
		session:      mocks.NewSessionRepository(t),
		otp:          mocks.NewOTPRepository(t),
		cosplayer:    mocks.NewCosplayerRepository(t),
		booking:      mocks.NewBookingRepository(t),
		payment:      mocks.NewPaymentRepository(t),
		escrow:       mocks.NewEscrowRepository(t),
		wallet:       mocks.NewWalletRepository(t),
		review:       mocks.NewReviewRepository(t),
		notification: mocks.NewNotificationRepository(t),
	}

	// notifications are best effort in every flow
	m.notification.On("Create", mock.Anything, mock.AnythingOfType("*entity.Notification")).Return(nil).Maybe()

	repo := &repository.Repository{
		User:         m.user,
		Session:      m.session,
		OTP:          m.otp,
		Cosplayer:    m.cosplayer,
		Booking:      m.booking,
		Payment:      m.payment,
		Escrow:       m.escrow,
		Wallet:       m.wallet,
		Review:       m.review,
		Notification: m.notification,
	}
	return repo, m
}

type harness struct {
	repo      *repository.Repository
	m         *repoMocks
	tx        *fakeTx
	gateway   *fakeGateway
	publisher *fakePublisher
	config    *utils.Config
	svc       *usecase.Service
}

func newHarness(t *testing.T) *harness {
	repo, m := newRepoMocks(t)
	h := &harness{
		repo:      repo,
		m:         m,
		tx:        &fakeTx{},
		gateway:   &fakeGateway{},
		publisher: &fakePublisher{},
		config: &utils.Config{
			Session: utils.SessionConfig{ExpiryHours: 24},
			OTP:     utils.OTPConfig{ExpiryMinutes: 10, Length: 6},
			Booking: utils.BookingConfig{
				OpenHour:               8,
				CloseHour:              22,
				ReminderLeadHours:      24,
				AutoCompleteAfterHours: 24,
			},
			Payment: utils.PaymentConfig{FeePercent: decimal.NewFromInt(2)},
		},
	}

	h.svc = usecase.NewService(repo, usecase.Deps{
		Tx:        h.tx,
		Gateway:   h.gateway,
		Publisher: h.publisher,
	}, h.config, zap.NewNop())

	return h
}

func vnd(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// decimalEq matches a decimal argument by value.
func decimalEq(want decimal.Decimal) any {
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(want) })
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func newCosplayer() *entity.Cosplayer {
	return &entity.Cosplayer{
		BaseNoDelete: entity.BaseNoDelete{ID: 7},
		UserID:       20,
		DisplayName:  "Raiden",
		PricePerHour: vnd(100000),
		IsAvailable:  true,
	}
}

func newBooking(status entity.BookingStatus, payment entity.BookingPaymentStatus) *entity.Booking {
	start := time.Now().Add(-48 * time.Hour).Truncate(time.Hour)
	return &entity.Booking{
		BaseNoDelete:    entity.BaseNoDelete{ID: 100},
		Code:            "BK-20260101-140000-0001",
		CustomerID:      10,
		CosplayerID:     7,
		ServiceType:     "photoshoot",
		StartAt:         start,
		EndAt:           start.Add(2 * time.Hour),
		DurationMinutes: 120,
		Location:        "Jakarta Convention Center",
		TotalPrice:      vnd(200000),
		Status:          status,
		PaymentStatus:   payment,
	}
}

func heldEscrow(amount int64) *entity.EscrowTransaction {
	return &entity.EscrowTransaction{
		BaseSimple:      entity.BaseSimple{ID: 55},
		BookingID:       100,
		PaymentID:       900,
		CustomerID:      10,
		CosplayerID:     7,
		Amount:          vnd(amount),
		Status:          entity.EscrowStatusHeld,
		TransactionCode: "ESC-20260101-150000-0001",
	}
}

func userWithBalance(id, balance int64) *entity.User {
	return &entity.User{
		Base:          entity.Base{ID: id},
		Username:      "user",
		Role:          entity.RoleCustomer,
		IsActive:      true,
		WalletBalance: vnd(balance),
	}
}
