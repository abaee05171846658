package repository

import (
	"context"
	"errors"
	"fmt"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id int64) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error

	// FindByCodeForUpdate locks the payment addressed by a gateway order code
	FindByCodeForUpdate(ctx context.Context, code int64) (*entity.Payment, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, code, booking_id, amount, method, status, transaction_id, payment_link_id,
		       checkout_url, processing_fee, net_amount, paid_at, created_at, updated_at`

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.BookingID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.TransactionID,
		&p.PaymentLinkID,
		&p.CheckoutURL,
		&p.ProcessingFee,
		&p.NetAmount,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (code, booking_id, amount, method, status, transaction_id,
		                      processing_fee, net_amount, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		payment.Code,
		payment.BookingID,
		payment.Amount,
		payment.Method,
		payment.Status,
		payment.TransactionID,
		payment.ProcessingFee,
		payment.NetAmount,
		payment.PaidAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	).Scan(&payment.ID)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.Int64("booking_id", payment.BookingID),
			zap.Int64("code", payment.Code),
		)
		return fmt.Errorf("create payment for booking %d: %w", payment.BookingID, err)
	}

	return nil
}

func (r *paymentRepository) findOne(ctx context.Context, query string, arg int64) (*entity.Payment, error) {
	payment, err := scanPayment(database.Conn(ctx, r.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment",
			zap.Error(err),
			zap.Int64("arg", arg),
		)
		return nil, fmt.Errorf("find payment %d: %w", arg, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id int64) (*entity.Payment, error) {
	return r.findOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

func (r *paymentRepository) FindByCodeForUpdate(ctx context.Context, code int64) (*entity.Payment, error) {
	return r.findOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE code = $1 FOR UPDATE`, code)
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find payments by booking ID",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find payments by booking %d: %w", bookingID, err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	return payments, nil
}

// Update writes gateway outcome fields; amount, method and booking are fixed at creation.
func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET status = $2, transaction_id = $3, payment_link_id = $4, checkout_url = $5,
		    processing_fee = $6, net_amount = $7, paid_at = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		payment.ID,
		payment.Status,
		payment.TransactionID,
		payment.PaymentLinkID,
		payment.CheckoutURL,
		payment.ProcessingFee,
		payment.NetAmount,
		payment.PaidAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update payment",
			zap.Error(err),
			zap.Int64("payment_id", payment.ID),
			zap.String("status", string(payment.Status)),
		)
		return fmt.Errorf("update payment %d: %w", payment.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %d not found", payment.ID)
	}

	return nil
}
