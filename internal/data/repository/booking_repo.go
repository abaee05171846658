package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter selects bookings for list endpoints. Nil fields are ignored.
type BookingFilter struct {
	CustomerID  *int64
	CosplayerID *int64
	Status      *string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindByCode(ctx context.Context, code string) (*entity.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter BookingFilter) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error)
	HasOverlap(ctx context.Context, cosplayerID int64, start, end time.Time) (bool, error)
	FindActiveInRange(ctx context.Context, cosplayerID int64, from, to time.Time) ([]*entity.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status entity.BookingPaymentStatus) error

	// Sweep queries
	FindConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]*entity.Booking, error)
	FindConfirmedPaidEndedBefore(ctx context.Context, cutoff time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, code, customer_id, cosplayer_id, service_type, start_at, end_at,
		       duration_minutes, location, notes, total_price, status, payment_status,
		       cancellation_reason, completed_at, cancelled_at, created_at, updated_at`

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Code,
		&b.CustomerID,
		&b.CosplayerID,
		&b.ServiceType,
		&b.StartAt,
		&b.EndAt,
		&b.DurationMinutes,
		&b.Location,
		&b.Notes,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentStatus,
		&b.CancellationReason,
		&b.CompletedAt,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (code, customer_id, cosplayer_id, service_type, start_at, end_at,
		                      duration_minutes, location, notes, total_price, status, payment_status,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		booking.Code,
		booking.CustomerID,
		booking.CosplayerID,
		booking.ServiceType,
		booking.StartAt,
		booking.EndAt,
		booking.DurationMinutes,
		booking.Location,
		booking.Notes,
		booking.TotalPrice,
		booking.Status,
		booking.PaymentStatus,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.ID)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("code", booking.Code),
			zap.Int64("customer_id", booking.CustomerID),
		)
		return fmt.Errorf("create booking %s: %w", booking.Code, err)
	}

	return nil
}

func (r *bookingRepository) findOne(ctx context.Context, query string, arg any) (*entity.Booking, error) {
	booking, err := scanBooking(database.Conn(ctx, r.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking",
			zap.Error(err),
			zap.Any("arg", arg),
		)
		return nil, fmt.Errorf("find booking %v: %w", arg, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

// FindByIDForUpdate locks the booking row; all status transitions go through it.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *bookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE code = $1`, code)
}

func (f BookingFilter) clause() (string, []any) {
	var sb strings.Builder
	args := []any{}

	if f.CustomerID != nil {
		args = append(args, *f.CustomerID)
		sb.WriteString(fmt.Sprintf(" AND customer_id = $%d", len(args)))
	}
	if f.CosplayerID != nil {
		args = append(args, *f.CosplayerID)
		sb.WriteString(fmt.Sprintf(" AND cosplayer_id = $%d", len(args)))
	}
	if f.Status != nil && *f.Status != "" {
		args = append(args, *f.Status)
		sb.WriteString(fmt.Sprintf(" AND status = $%d", len(args)))
	}

	return sb.String(), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	where, args := filter.clause()
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := filter.clause()
	query := `SELECT COUNT(*) FROM bookings WHERE 1=1` + where

	var count int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

// Update persists lifecycle fields of a booking
func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, payment_status = $3, cancellation_reason = $4,
		    completed_at = $5, cancelled_at = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.PaymentStatus,
		booking.CancellationReason,
		booking.CompletedAt,
		booking.CancelledAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
			zap.String("status", string(booking.Status)),
		)
		return fmt.Errorf("update booking %d: %w", booking.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %d not found", booking.ID)
	}

	return nil
}

func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status entity.BookingPaymentStatus) error {
	query := `UPDATE bookings SET payment_status = $2, updated_at = NOW() WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking payment status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("payment_status", string(status)),
		)
		return fmt.Errorf("update booking %d payment status to %s: %w", id, status, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %d not found", id)
	}

	return nil
}

// HasOverlap reports whether a non-cancelled booking of the cosplayer
// intersects [start, end). Touching intervals do not overlap.
func (r *bookingRepository) HasOverlap(ctx context.Context, cosplayerID int64, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE cosplayer_id = $1
			  AND status <> 'cancelled'
			  AND start_at < $3
			  AND end_at > $2
		)
	`

	var exists bool
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, cosplayerID, start, end).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check booking overlap",
			zap.Error(err),
			zap.Int64("cosplayer_id", cosplayerID),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return false, fmt.Errorf("check overlap for cosplayer %d: %w", cosplayerID, err)
	}

	return exists, nil
}

func (r *bookingRepository) FindActiveInRange(ctx context.Context, cosplayerID int64, from, to time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE cosplayer_id = $1
		  AND status <> 'cancelled'
		  AND start_at < $3
		  AND end_at > $2
		ORDER BY start_at
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, cosplayerID, from, to)
	if err != nil {
		r.log.Error("Failed to find bookings in range",
			zap.Error(err),
			zap.Int64("cosplayer_id", cosplayerID),
		)
		return nil, fmt.Errorf("find bookings in range for cosplayer %d: %w", cosplayerID, err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) FindConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed'
		  AND start_at >= $1
		  AND start_at < $2
		ORDER BY start_at
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find upcoming bookings", zap.Error(err))
		return nil, fmt.Errorf("find upcoming bookings: %w", err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) FindConfirmedPaidEndedBefore(ctx context.Context, cutoff time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed'
		  AND payment_status = 'paid'
		  AND end_at < $1
		ORDER BY end_at
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to find finished bookings", zap.Error(err))
		return nil, fmt.Errorf("find finished bookings: %w", err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) collect(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}
