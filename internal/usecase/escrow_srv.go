package usecase

import (
	"context"
	"fmt"
	"time"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/data/repository"
	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/dto/response"
	"cosplay-booking/pkg/database"
	"cosplay-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EscrowService owns the held -> released|refunded lifecycle. Release and
// refund move money through the wallet ledger in the caller's transaction.
type EscrowService interface {
	CreateEscrow(ctx context.Context, booking *entity.Booking, paymentID int64, amount decimal.Decimal) (*entity.EscrowTransaction, error)
	ReleaseForBooking(ctx context.Context, booking *entity.Booking) (*entity.EscrowTransaction, error)
	RefundForBooking(ctx context.Context, booking *entity.Booking, reason string) (*entity.EscrowTransaction, error)

	// Admin endpoints
	ListEscrows(ctx context.Context, req *request.EscrowListRequest) (*response.PaginatedResponse[response.EscrowResponse], error)
	GetEscrow(ctx context.Context, id int64) (*response.EscrowResponse, error)
	AdminRefund(ctx context.Context, id int64, req *request.RefundEscrowRequest) (*response.EscrowResponse, error)
	AdminRelease(ctx context.Context, id int64) (*response.EscrowResponse, error)
}

type escrowService struct {
	repo     *repository.Repository
	tx       database.Transactor
	wallet   WalletService
	notifier NotificationService
	log      *zap.Logger
}

func NewEscrowService(repo *repository.Repository, tx database.Transactor, wallet WalletService, notifier NotificationService, log *zap.Logger) EscrowService {
	return &escrowService{
		repo:     repo,
		tx:       tx,
		wallet:   wallet,
		notifier: notifier,
		log:      log.With(zap.String("service", "escrow")),
	}
}

func (s *escrowService) CreateEscrow(ctx context.Context, booking *entity.Booking, paymentID int64, amount decimal.Decimal) (*entity.EscrowTransaction, error) {
	if !amount.IsPositive() {
		return nil, utils.Validation("escrow amount must be greater than zero")
	}

	held, err := s.repo.Escrow.FindHeldByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if held != nil {
		return nil, utils.Conflict("booking %s already has a held escrow", booking.Code)
	}

	now := time.Now()
	escrow := &entity.EscrowTransaction{
		BaseSimple:      entity.BaseSimple{CreatedAt: now},
		BookingID:       booking.ID,
		PaymentID:       paymentID,
		CustomerID:      booking.CustomerID,
		CosplayerID:     booking.CosplayerID,
		Amount:          amount,
		Status:          entity.EscrowStatusHeld,
		TransactionCode: utils.GenerateEscrowCode(now),
	}

	if err := s.repo.Escrow.Create(ctx, escrow); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.Conflict("booking %s already has a held escrow", booking.Code)
		}
		return nil, err
	}

	s.log.Info("Escrow held",
		zap.Int64("escrow_id", escrow.ID),
		zap.Int64("booking_id", booking.ID),
		zap.String("amount", amount.String()),
	)

	return escrow, nil
}

// ReleaseForBooking pays the held escrow of a completed booking out to the
// cosplayer.
func (s *escrowService) ReleaseForBooking(ctx context.Context, booking *entity.Booking) (*entity.EscrowTransaction, error) {
	var escrow *entity.EscrowTransaction

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		held, err := s.repo.Escrow.FindHeldByBookingID(ctx, booking.ID)
		if err != nil {
			return err
		}
		if held == nil {
			return utils.NotFound("no held escrow for booking %s", booking.Code)
		}

		if err := s.release(ctx, held, booking); err != nil {
			return err
		}
		escrow = held
		return nil
	})
	if err != nil {
		return nil, err
	}

	return escrow, nil
}

// RefundForBooking returns the held escrow of a cancelled booking to the
// customer and marks the booking refunded in memory; the caller persists the
// booking. An unpaid booking, or one without a held escrow, is a no-op.
func (s *escrowService) RefundForBooking(ctx context.Context, booking *entity.Booking, reason string) (*entity.EscrowTransaction, error) {
	if booking.PaymentStatus != entity.BookingPaymentPaid {
		return nil, nil
	}

	var escrow *entity.EscrowTransaction

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		held, err := s.repo.Escrow.FindHeldByBookingID(ctx, booking.ID)
		if err != nil {
			return err
		}
		if held == nil {
			return nil
		}

		if err := s.refund(ctx, held, booking, reason); err != nil {
			return err
		}
		escrow = held
		return nil
	})
	if err != nil {
		return nil, err
	}

	return escrow, nil
}

func (s *escrowService) release(ctx context.Context, escrow *entity.EscrowTransaction, booking *entity.Booking) error {
	if booking.Status != entity.BookingStatusCompleted {
		return utils.Conflict("booking %s must be completed before release", booking.Code)
	}

	cosplayer, err := s.repo.Cosplayer.FindByID(ctx, escrow.CosplayerID)
	if err != nil {
		return err
	}
	if cosplayer == nil {
		return utils.NotFound("cosplayer %d not found", escrow.CosplayerID)
	}

	now := time.Now()
	escrow.Status = entity.EscrowStatusReleased
	escrow.ReleasedAt = &now
	if err := s.repo.Escrow.MarkReleased(ctx, escrow); err != nil {
		return err
	}

	_, err = s.wallet.Credit(ctx, cosplayer.UserID, entity.WalletTxEscrowRelease, escrow.Amount,
		fmt.Sprintf("Escrow release for booking %s", booking.Code), &escrow.TransactionCode)
	if err != nil {
		return err
	}

	s.log.Info("Escrow released",
		zap.Int64("escrow_id", escrow.ID),
		zap.Int64("booking_id", booking.ID),
		zap.String("amount", escrow.Amount.String()),
	)

	return nil
}

func (s *escrowService) refund(ctx context.Context, escrow *entity.EscrowTransaction, booking *entity.Booking, reason string) error {
	if booking.Status != entity.BookingStatusCancelled {
		return utils.Conflict("booking %s must be cancelled before refund", booking.Code)
	}

	now := time.Now()
	escrow.Status = entity.EscrowStatusRefunded
	escrow.RefundReason = &reason
	escrow.RefundedAt = &now
	if err := s.repo.Escrow.MarkRefunded(ctx, escrow); err != nil {
		return err
	}

	_, err := s.wallet.Credit(ctx, escrow.CustomerID, entity.WalletTxRefund, escrow.Amount,
		fmt.Sprintf("Refund for booking %s", booking.Code), &escrow.TransactionCode)
	if err != nil {
		return err
	}

	booking.PaymentStatus = entity.BookingPaymentRefunded
	booking.UpdatedAt = now

	s.log.Info("Escrow refunded",
		zap.Int64("escrow_id", escrow.ID),
		zap.Int64("booking_id", booking.ID),
		zap.String("amount", escrow.Amount.String()),
		zap.String("reason", reason),
	)

	return nil
}

func (s *escrowService) ListEscrows(ctx context.Context, req *request.EscrowListRequest) (*response.PaginatedResponse[response.EscrowResponse], error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ValidationError(errs)
	}

	items, err := s.repo.Escrow.FindAll(ctx, req.Status, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Escrow.CountAll(ctx, req.Status)
	if err != nil {
		return nil, err
	}

	return response.Paginate(items, response.EscrowToResponse, req.Page, req.PerPage, total), nil
}

func (s *escrowService) GetEscrow(ctx context.Context, id int64) (*response.EscrowResponse, error) {
	escrow, err := s.repo.Escrow.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if escrow == nil {
		return nil, utils.NotFound("escrow %d not found", id)
	}

	resp := response.EscrowToResponse(escrow)
	return &resp, nil
}

// AdminRefund refunds a held escrow regardless of booking state. A booking
// that has not reached a terminal state is cancelled with the same reason.
func (s *escrowService) AdminRefund(ctx context.Context, id int64, req *request.RefundEscrowRequest) (*response.EscrowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin refund validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	var (
		escrow        *entity.EscrowTransaction
		booking       *entity.Booking
		wasCancelling bool
	)

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		escrow, err = s.lockHeld(ctx, id)
		if err != nil {
			return err
		}

		booking, err = s.repo.Booking.FindByIDForUpdate(ctx, escrow.BookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return utils.NotFound("booking %d not found", escrow.BookingID)
		}

		switch booking.Status {
		case entity.BookingStatusCompleted:
			return utils.Conflict("booking %s is completed, release the escrow instead", booking.Code)
		case entity.BookingStatusPending, entity.BookingStatusConfirmed:
			now := time.Now()
			booking.Status = entity.BookingStatusCancelled
			booking.CancellationReason = &req.Reason
			booking.CancelledAt = &now
			wasCancelling = true
		}

		if err := s.refund(ctx, escrow, booking, req.Reason); err != nil {
			return err
		}
		return s.repo.Booking.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, escrow.CustomerID, entity.NotifEscrowRefunded,
		"Refund processed",
		fmt.Sprintf("%s has been refunded to your wallet for booking %s", escrow.Amount.String(), booking.Code),
		map[string]any{"booking_id": booking.ID, "escrow_id": escrow.ID, "amount": escrow.Amount.String()},
	)
	if wasCancelling {
		s.notifier.Notify(ctx, booking.CustomerID, entity.NotifBookingCancelled,
			"Booking cancelled",
			fmt.Sprintf("Booking %s was cancelled by an administrator: %s", booking.Code, req.Reason),
			map[string]any{"booking_id": booking.ID},
		)
	}

	resp := response.EscrowToResponse(escrow)
	return &resp, nil
}

// AdminRelease pays out an escrow still held on a completed booking.
func (s *escrowService) AdminRelease(ctx context.Context, id int64) (*response.EscrowResponse, error) {
	var escrow *entity.EscrowTransaction

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		escrow, err = s.lockHeld(ctx, id)
		if err != nil {
			return err
		}

		booking, err := s.repo.Booking.FindByIDForUpdate(ctx, escrow.BookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return utils.NotFound("booking %d not found", escrow.BookingID)
		}

		return s.release(ctx, escrow, booking)
	})
	if err != nil {
		return nil, err
	}

	resp := response.EscrowToResponse(escrow)
	return &resp, nil
}

func (s *escrowService) lockHeld(ctx context.Context, id int64) (*entity.EscrowTransaction, error) {
	escrow, err := s.repo.Escrow.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if escrow == nil {
		return nil, utils.NotFound("escrow %d not found", id)
	}
	if escrow.Status != entity.EscrowStatusHeld {
		return nil, utils.Conflict("escrow %s is already %s", escrow.TransactionCode, escrow.Status)
	}
	return escrow, nil
}
