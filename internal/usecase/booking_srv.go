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

type BookingService interface {
	// Lifecycle
	CreateBooking(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ConfirmBooking(ctx context.Context, actor Actor, bookingID int64) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, actor Actor, bookingID int64, req *request.CancelBookingRequest) (*response.BookingResponse, error)
	CompleteBooking(ctx context.Context, actor Actor, bookingID int64) (*response.BookingResponse, error)

	// Queries
	GetBooking(ctx context.Context, actor Actor, bookingID int64) (*response.BookingResponse, error)
	ListMyBookings(ctx context.Context, actor Actor, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Admin endpoints
	ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo     *repository.Repository
	tx       database.Transactor
	escrow   EscrowService
	notifier NotificationService
	config   utils.BookingConfig
	log      *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	tx database.Transactor,
	escrow EscrowService,
	notifier NotificationService,
	config utils.BookingConfig,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		tx:       tx,
		escrow:   escrow,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("service", "booking")),
	}
}

const slotLayout = "2006-01-02 15:04"

var minutesPerHour = decimal.NewFromInt(60)

// bookingWindow parses the requested slot in server local time.
func (s *bookingService) bookingWindow(req *request.CreateBookingRequest, now time.Time) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(slotLayout, req.Date+" "+req.StartTime, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, utils.Validation("invalid start time")
	}
	end, err := time.ParseInLocation(slotLayout, req.Date+" "+req.EndTime, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, utils.Validation("invalid end time")
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, utils.Validation("start time must be before end time")
	}
	if !start.After(now) {
		return time.Time{}, time.Time{}, utils.Validation("cannot book a slot in the past")
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if startMin < s.config.OpenHour*60 || endMin > s.config.CloseHour*60 {
		return time.Time{}, time.Time{}, utils.Validation("bookings must be between %02d:00 and %02d:00", s.config.OpenHour, s.config.CloseHour)
	}

	return start, end, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	now := time.Now()
	start, end, err := s.bookingWindow(req, now)
	if err != nil {
		s.log.Warn("Create booking rejected", zap.Error(err), zap.Int64("customer_id", actor.UserID))
		return nil, err
	}

	var (
		booking   *entity.Booking
		cosplayer *entity.Cosplayer
	)

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		// 2. Lock cosplayer supaya booking paralel antri
		cosplayer, err = s.repo.Cosplayer.FindByIDForUpdate(ctx, req.CosplayerID)
		if err != nil {
			return err
		}
		if cosplayer == nil {
			return utils.NotFound("cosplayer %d not found", req.CosplayerID)
		}
		if !cosplayer.IsAvailable {
			return utils.Conflict("cosplayer %s is not accepting bookings", cosplayer.DisplayName)
		}
		if cosplayer.UserID == actor.UserID {
			return utils.Validation("you cannot book yourself")
		}

		// 3. Cek bentrok jadwal
		overlap, err := s.repo.Booking.HasOverlap(ctx, cosplayer.ID, start, end)
		if err != nil {
			return err
		}
		if overlap {
			return utils.Conflict("cosplayer is already booked between %s and %s", req.StartTime, req.EndTime)
		}

		// 4. Hitung harga
		minutes := int(end.Sub(start).Minutes())
		price := cosplayer.PricePerHour.Mul(decimal.NewFromInt(int64(minutes))).Div(minutesPerHour).Round(0)

		booking = &entity.Booking{
			BaseNoDelete:    entity.BaseNoDelete{CreatedAt: now, UpdatedAt: now},
			Code:            utils.GenerateBookingCode(now),
			CustomerID:      actor.UserID,
			CosplayerID:     cosplayer.ID,
			ServiceType:     req.ServiceType,
			StartAt:         start,
			EndAt:           end,
			DurationMinutes: minutes,
			Location:        req.Location,
			Notes:           req.Notes,
			TotalPrice:      price,
			Status:          entity.BookingStatusPending,
			PaymentStatus:   entity.BookingPaymentPending,
		}

		return s.repo.Booking.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("code", booking.Code),
		zap.Int64("customer_id", actor.UserID),
		zap.Int64("cosplayer_id", cosplayer.ID),
		zap.String("total_price", booking.TotalPrice.String()),
	)

	s.notifier.Notify(ctx, cosplayer.UserID, entity.NotifBookingCreated,
		"New booking request",
		fmt.Sprintf("New %s booking %s on %s", booking.ServiceType, booking.Code, booking.StartAt.Format(slotLayout)),
		bookingEventData(booking),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, actor Actor, bookingID int64) (*response.BookingResponse, error) {
	var booking *entity.Booking

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var (
			cosplayer *entity.Cosplayer
			err       error
		)
		booking, cosplayer, err = s.lockWithCosplayer(ctx, bookingID)
		if err != nil {
			return err
		}

		if cosplayer.UserID != actor.UserID {
			return utils.Forbidden("only the booked cosplayer can confirm booking %s", booking.Code)
		}
		if err := transition(booking, entity.BookingStatusConfirmed); err != nil {
			return err
		}

		booking.UpdatedAt = time.Now()
		return s.repo.Booking.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking confirmed", zap.Int64("booking_id", booking.ID))

	s.notifier.Notify(ctx, booking.CustomerID, entity.NotifBookingConfirmed,
		"Booking confirmed",
		fmt.Sprintf("Your booking %s has been confirmed", booking.Code),
		bookingEventData(booking),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actor Actor, bookingID int64, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Cancel booking validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	var (
		booking   *entity.Booking
		cosplayer *entity.Cosplayer
		refunded  *entity.EscrowTransaction
	)

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		booking, cosplayer, err = s.lockWithCosplayer(ctx, bookingID)
		if err != nil {
			return err
		}

		// 1. Hanya customer, cosplayer, atau admin
		if !actor.IsAdmin() && booking.CustomerID != actor.UserID && cosplayer.UserID != actor.UserID {
			return utils.Forbidden("you are not a participant of booking %s", booking.Code)
		}
		if err := transition(booking, entity.BookingStatusCancelled); err != nil {
			return err
		}

		now := time.Now()
		booking.Status = entity.BookingStatusCancelled
		booking.CancellationReason = &req.Reason
		booking.CancelledAt = &now
		booking.UpdatedAt = now

		// 2. Refund escrow kalau sudah dibayar
		refunded, err = s.escrow.RefundForBooking(ctx, booking, req.Reason)
		if err != nil {
			return err
		}

		return s.repo.Booking.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("actor_id", actor.UserID),
		zap.Bool("refunded", refunded != nil),
	)

	msg := fmt.Sprintf("Booking %s was cancelled: %s", booking.Code, req.Reason)
	s.notifier.Notify(ctx, booking.CustomerID, entity.NotifBookingCancelled, "Booking cancelled", msg, bookingEventData(booking))
	s.notifier.Notify(ctx, cosplayer.UserID, entity.NotifBookingCancelled, "Booking cancelled", msg, bookingEventData(booking))
	if refunded != nil {
		s.notifier.Notify(ctx, booking.CustomerID, entity.NotifEscrowRefunded,
			"Refund processed",
			fmt.Sprintf("%s has been refunded to your wallet", refunded.Amount.String()),
			map[string]any{"booking_id": booking.ID, "escrow_id": refunded.ID, "amount": refunded.Amount.String()},
		)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, actor Actor, bookingID int64) (*response.BookingResponse, error) {
	var (
		booking   *entity.Booking
		cosplayer *entity.Cosplayer
	)

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		booking, cosplayer, err = s.lockWithCosplayer(ctx, bookingID)
		if err != nil {
			return err
		}

		if !actor.IsSystem() && !actor.IsAdmin() && booking.CustomerID != actor.UserID {
			return utils.Forbidden("only the customer can complete booking %s", booking.Code)
		}
		if err := transition(booking, entity.BookingStatusCompleted); err != nil {
			return err
		}
		if booking.PaymentStatus != entity.BookingPaymentPaid {
			return utils.Conflict("booking %s must be paid before completion", booking.Code)
		}

		now := time.Now()
		booking.Status = entity.BookingStatusCompleted
		booking.CompletedAt = &now
		booking.UpdatedAt = now
		if err := s.repo.Booking.Update(ctx, booking); err != nil {
			return err
		}

		// Escrow cair ke cosplayer dalam transaksi yang sama
		_, err = s.escrow.ReleaseForBooking(ctx, booking)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking completed",
		zap.Int64("booking_id", booking.ID),
		zap.Bool("by_system", actor.IsSystem()),
	)

	s.notifier.Notify(ctx, booking.CustomerID, entity.NotifBookingCompleted,
		"Booking completed",
		fmt.Sprintf("Booking %s is complete. You can now leave a review", booking.Code),
		bookingEventData(booking),
	)
	s.notifier.Notify(ctx, cosplayer.UserID, entity.NotifBookingCompleted,
		"Booking completed",
		fmt.Sprintf("Booking %s is complete and %s was released to your wallet", booking.Code, booking.TotalPrice.String()),
		bookingEventData(booking),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor Actor, bookingID int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, utils.NotFound("booking %d not found", bookingID)
	}

	if !actor.IsAdmin() && booking.CustomerID != actor.UserID {
		cosplayer, err := s.repo.Cosplayer.FindByID(ctx, booking.CosplayerID)
		if err != nil {
			return nil, err
		}
		if cosplayer == nil || cosplayer.UserID != actor.UserID {
			return nil, utils.Forbidden("you are not a participant of booking %s", booking.Code)
		}
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, actor Actor, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ValidationError(errs)
	}

	filter := repository.BookingFilter{Status: req.Status}

	if req.As == string(entity.RoleCosplayer) {
		cosplayer, err := s.repo.Cosplayer.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if cosplayer == nil {
			return nil, utils.NotFound("cosplayer profile not found")
		}
		filter.CosplayerID = &cosplayer.ID
	} else {
		filter.CustomerID = &actor.UserID
	}

	return s.list(ctx, filter, &req.PaginatedRequest)
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ValidationError(errs)
	}

	return s.list(ctx, repository.BookingFilter{Status: req.Status}, &req.PaginatedRequest)
}

func (s *bookingService) list(ctx context.Context, filter repository.BookingFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(out, page.Page, page.PerPage, total), nil
}

// lockWithCosplayer locks the booking row and loads its cosplayer.
func (s *bookingService) lockWithCosplayer(ctx context.Context, bookingID int64) (*entity.Booking, *entity.Cosplayer, error) {
	booking, err := s.repo.Booking.FindByIDForUpdate(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, utils.NotFound("booking %d not found", bookingID)
	}

	cosplayer, err := s.repo.Cosplayer.FindByID(ctx, booking.CosplayerID)
	if err != nil {
		return nil, nil, err
	}
	if cosplayer == nil {
		return nil, nil, utils.NotFound("cosplayer %d not found", booking.CosplayerID)
	}

	return booking, cosplayer, nil
}

func transition(booking *entity.Booking, next entity.BookingStatus) error {
	if !booking.Status.CanTransitionTo(next) {
		return utils.Conflict("booking %s cannot change from %s to %s", booking.Code, booking.Status, next)
	}
	booking.Status = next
	return nil
}

func bookingEventData(b *entity.Booking) map[string]any {
	return map[string]any{
		"booking_id":   b.ID,
		"code":         b.Code,
		"status":       string(b.Status),
		"start_at":     b.StartAt,
		"end_at":       b.EndAt,
		"total_price":  b.TotalPrice.String(),
		"cosplayer_id": b.CosplayerID,
	}
}
