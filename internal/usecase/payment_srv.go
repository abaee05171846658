package usecase

import (
	"context"
	"fmt"
	"time"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/data/repository"
	"cosplay-booking/internal/dto/response"
	"cosplay-booking/pkg/database"
	"cosplay-booking/pkg/payos"
	"cosplay-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentService interface {
	CreateCheckout(ctx context.Context, actor Actor, bookingID int64) (*response.CheckoutResponse, error)
	PayWithWallet(ctx context.Context, actor Actor, bookingID int64) (*response.PaymentResponse, error)
	ListBookingPayments(ctx context.Context, actor Actor, bookingID int64) ([]response.PaymentResponse, error)

	// HandleWebhook applies a gateway callback to a pending top-up or payment
	HandleWebhook(ctx context.Context, payload *payos.WebhookPayload) error
}

type paymentService struct {
	repo       *repository.Repository
	tx         database.Transactor
	gateway    PaymentGateway
	wallet     WalletService
	escrow     EscrowService
	notifier   NotificationService
	feePercent decimal.Decimal
	log        *zap.Logger
}

func NewPaymentService(
	repo *repository.Repository,
	tx database.Transactor,
	gateway PaymentGateway,
	wallet WalletService,
	escrow EscrowService,
	notifier NotificationService,
	config utils.PaymentConfig,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:       repo,
		tx:         tx,
		gateway:    gateway,
		wallet:     wallet,
		escrow:     escrow,
		notifier:   notifier,
		feePercent: config.FeePercent,
		log:        log.With(zap.String("service", "payment")),
	}
}

// paymentSettlement is the outcome of a paid gateway callback.
type paymentSettlement struct {
	payment    *entity.Payment
	booking    *entity.Booking
	lateRefund bool
}

var hundred = decimal.NewFromInt(100)

func (s *paymentService) fee(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(s.feePercent).Div(hundred).Round(2)
}

// payableBooking checks the booking can take a new payment from actor.
func payableBooking(booking *entity.Booking, actor Actor) error {
	if booking.CustomerID != actor.UserID {
		return utils.Forbidden("booking %s belongs to another customer", booking.Code)
	}
	if booking.Status != entity.BookingStatusPending && booking.Status != entity.BookingStatusConfirmed {
		return utils.Conflict("booking %s is %s and cannot be paid", booking.Code, booking.Status)
	}
	if booking.PaymentStatus != entity.BookingPaymentPending {
		return utils.Conflict("booking %s is already %s", booking.Code, booking.PaymentStatus)
	}
	return nil
}

func (s *paymentService) CreateCheckout(ctx context.Context, actor Actor, bookingID int64) (*response.CheckoutResponse, error) {
	// 1. Cek booking
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFound("booking %d not found", bookingID)
	}
	if err := payableBooking(booking, actor); err != nil {
		s.log.Warn("Checkout rejected", zap.Error(err), zap.Int64("booking_id", bookingID))
		return nil, err
	}

	// 2. Payment pending
	now := time.Now()
	payment := &entity.Payment{
		BaseNoDelete: entity.BaseNoDelete{CreatedAt: now, UpdatedAt: now},
		Code:         utils.GenerateOrderCode(now),
		BookingID:    booking.ID,
		Amount:       booking.TotalPrice,
		Method:       entity.PaymentMethodPayOS,
		Status:       entity.PaymentStatusPending,
	}
	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, err
	}

	// 3. Checkout link dari gateway
	link, err := s.gateway.CreatePaymentLink(ctx, payment.Code, payment.Amount.IntPart(), booking.Code)
	if err != nil {
		s.log.Error("Failed to create payment link",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
			zap.Int64("order_code", payment.Code),
		)
		payment.Status = entity.PaymentStatusFailed
		payment.UpdatedAt = time.Now()
		if uerr := s.repo.Payment.Update(ctx, payment); uerr != nil {
			s.log.Warn("Failed to mark payment failed", zap.Error(uerr), zap.Int64("payment_id", payment.ID))
		}
		return nil, utils.External(err, "payment gateway unavailable")
	}

	payment.PaymentLinkID = &link.PaymentLinkID
	payment.CheckoutURL = &link.CheckoutURL
	payment.UpdatedAt = time.Now()
	if err := s.repo.Payment.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("Checkout created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("order_code", payment.Code),
		zap.String("amount", payment.Amount.String()),
	)

	return &response.CheckoutResponse{
		PaymentID:     payment.ID,
		OrderCode:     payment.Code,
		Amount:        payment.Amount,
		CheckoutURL:   link.CheckoutURL,
		PaymentLinkID: link.PaymentLinkID,
	}, nil
}

func (s *paymentService) PayWithWallet(ctx context.Context, actor Actor, bookingID int64) (*response.PaymentResponse, error) {
	var (
		payment *entity.Payment
		booking *entity.Booking
	)

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		// 1. Lock booking
		booking, err = s.repo.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return utils.NotFound("booking %d not found", bookingID)
		}
		if err := payableBooking(booking, actor); err != nil {
			return err
		}

		// 2. Potong saldo
		wtx, err := s.wallet.Debit(ctx, actor.UserID, booking.TotalPrice,
			fmt.Sprintf("Payment for booking %s", booking.Code), &booking.Code)
		if err != nil {
			return err
		}

		// 3. Payment paid
		now := time.Now()
		fee := s.fee(booking.TotalPrice)
		payment = &entity.Payment{
			BaseNoDelete:  entity.BaseNoDelete{CreatedAt: now, UpdatedAt: now},
			Code:          utils.GenerateOrderCode(now),
			BookingID:     booking.ID,
			Amount:        booking.TotalPrice,
			Method:        entity.PaymentMethodWallet,
			Status:        entity.PaymentStatusPaid,
			TransactionID: &wtx.Code,
			ProcessingFee: fee,
			NetAmount:     booking.TotalPrice.Sub(fee),
			PaidAt:        &now,
		}
		if err := s.repo.Payment.Create(ctx, payment); err != nil {
			return err
		}

		// 4. Booking paid + escrow
		if err := s.repo.Booking.UpdatePaymentStatus(ctx, booking.ID, entity.BookingPaymentPaid); err != nil {
			return err
		}
		booking.PaymentStatus = entity.BookingPaymentPaid
		booking.UpdatedAt = now

		_, err = s.escrow.CreateEscrow(ctx, booking, payment.ID, payment.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyPaid(ctx, &paymentSettlement{payment: payment, booking: booking})

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// settleGatewayPayment applies a verified callback to a locked payment. It
// returns nil when the payment was already settled or has failed.
func (s *paymentService) settleGatewayPayment(ctx context.Context, payment *entity.Payment, success bool, data *payos.WebhookData) (*paymentSettlement, error) {
	if payment.Status != entity.PaymentStatusPending {
		s.log.Info("Payment already settled",
			zap.Int64("payment_id", payment.ID),
			zap.String("status", string(payment.Status)),
		)
		return nil, nil
	}

	now := time.Now()

	if !success {
		payment.Status = entity.PaymentStatusFailed
		payment.UpdatedAt = now
		return nil, s.repo.Payment.Update(ctx, payment)
	}

	if !payment.Amount.Equal(decimal.NewFromInt(data.Amount)) {
		s.log.Warn("Payment amount mismatch",
			zap.Int64("payment_id", payment.ID),
			zap.String("expected", payment.Amount.String()),
			zap.Int64("received", data.Amount),
		)
		return nil, utils.Validation("amount mismatch for order %d", payment.Code)
	}

	booking, err := s.repo.Booking.FindByIDForUpdate(ctx, payment.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFound("booking %d not found", payment.BookingID)
	}

	fee := s.fee(payment.Amount)
	reference := data.Reference
	payment.Status = entity.PaymentStatusPaid
	payment.TransactionID = &reference
	payment.ProcessingFee = fee
	payment.NetAmount = payment.Amount.Sub(fee)
	payment.PaidAt = &now
	payment.UpdatedAt = now
	if err := s.repo.Payment.Update(ctx, payment); err != nil {
		return nil, err
	}

	result := &paymentSettlement{payment: payment, booking: booking}

	// Uang masuk setelah booking batal / sudah dibayar: kembalikan ke wallet
	if booking.Status.IsTerminal() || booking.PaymentStatus != entity.BookingPaymentPending {
		s.log.Warn("Late payment refunded to wallet",
			zap.Int64("payment_id", payment.ID),
			zap.Int64("booking_id", booking.ID),
			zap.String("booking_status", string(booking.Status)),
		)
		code := fmt.Sprintf("%d", payment.Code)
		if _, err := s.wallet.Credit(ctx, booking.CustomerID, entity.WalletTxRefund, payment.Amount,
			fmt.Sprintf("Refund for late payment on booking %s", booking.Code), &code); err != nil {
			return nil, err
		}
		result.lateRefund = true
		return result, nil
	}

	if err := s.repo.Booking.UpdatePaymentStatus(ctx, booking.ID, entity.BookingPaymentPaid); err != nil {
		return nil, err
	}
	booking.PaymentStatus = entity.BookingPaymentPaid
	booking.UpdatedAt = now

	if _, err := s.escrow.CreateEscrow(ctx, booking, payment.ID, payment.Amount); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *paymentService) notifyPaid(ctx context.Context, st *paymentSettlement) {
	data := map[string]any{
		"booking_id": st.booking.ID,
		"payment_id": st.payment.ID,
		"amount":     st.payment.Amount.String(),
	}

	if st.lateRefund {
		s.notifier.Notify(ctx, st.booking.CustomerID, entity.NotifEscrowRefunded,
			"Payment refunded",
			fmt.Sprintf("Booking %s could no longer be paid; %s was returned to your wallet", st.booking.Code, st.payment.Amount.String()),
			data,
		)
		return
	}

	s.notifier.Notify(ctx, st.booking.CustomerID, entity.NotifPaymentPaid,
		"Payment received",
		fmt.Sprintf("Payment for booking %s was received", st.booking.Code),
		data,
	)

	cosplayer, err := s.repo.Cosplayer.FindByID(ctx, st.booking.CosplayerID)
	if err != nil || cosplayer == nil {
		s.log.Warn("Cosplayer not found for payment notification", zap.Int64("cosplayer_id", st.booking.CosplayerID))
		return
	}
	s.notifier.Notify(ctx, cosplayer.UserID, entity.NotifPaymentPaid,
		"Booking paid",
		fmt.Sprintf("Booking %s has been paid and is held in escrow", st.booking.Code),
		data,
	)
}

func (s *paymentService) ListBookingPayments(ctx context.Context, actor Actor, bookingID int64) ([]response.PaymentResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFound("booking %d not found", bookingID)
	}
	if !actor.IsAdmin() && booking.CustomerID != actor.UserID {
		return nil, utils.Forbidden("booking %s belongs to another customer", booking.Code)
	}

	payments, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	out := make([]response.PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = response.PaymentToResponse(p)
	}
	return out, nil
}
