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

type EscrowRepository interface {
	Create(ctx context.Context, escrow *entity.EscrowTransaction) error
	FindByID(ctx context.Context, id int64) (*entity.EscrowTransaction, error)
	FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.EscrowTransaction, error)
	FindAll(ctx context.Context, status *string, limit, offset int) ([]*entity.EscrowTransaction, error)
	CountAll(ctx context.Context, status *string) (int64, error)

	// Held escrow lookups lock the row for the settling transaction
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.EscrowTransaction, error)
	FindHeldByBookingID(ctx context.Context, bookingID int64) (*entity.EscrowTransaction, error)
	MarkReleased(ctx context.Context, escrow *entity.EscrowTransaction) error
	MarkRefunded(ctx context.Context, escrow *entity.EscrowTransaction) error
}

type escrowRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEscrowRepository(db database.PgxIface, log *zap.Logger) EscrowRepository {
	return &escrowRepository{
		db:  db,
		log: log.With(zap.String("repository", "escrow")),
	}
}

const escrowColumns = `id, booking_id, payment_id, customer_id, cosplayer_id, amount, status,
		       transaction_code, refund_reason, released_at, refunded_at, created_at`

func scanEscrow(row rowScanner) (*entity.EscrowTransaction, error) {
	var e entity.EscrowTransaction
	err := row.Scan(
		&e.ID,
		&e.BookingID,
		&e.PaymentID,
		&e.CustomerID,
		&e.CosplayerID,
		&e.Amount,
		&e.Status,
		&e.TransactionCode,
		&e.RefundReason,
		&e.ReleasedAt,
		&e.RefundedAt,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *escrowRepository) Create(ctx context.Context, escrow *entity.EscrowTransaction) error {
	query := `
		INSERT INTO escrow_transactions (booking_id, payment_id, customer_id, cosplayer_id, amount,
		                                 status, transaction_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		escrow.BookingID,
		escrow.PaymentID,
		escrow.CustomerID,
		escrow.CosplayerID,
		escrow.Amount,
		escrow.Status,
		escrow.TransactionCode,
		escrow.CreatedAt,
	).Scan(&escrow.ID)

	if err != nil {
		r.log.Error("Failed to create escrow",
			zap.Error(err),
			zap.Int64("booking_id", escrow.BookingID),
			zap.String("code", escrow.TransactionCode),
		)
		return fmt.Errorf("create escrow for booking %d: %w", escrow.BookingID, err)
	}

	return nil
}

func (r *escrowRepository) findOne(ctx context.Context, query string, arg int64) (*entity.EscrowTransaction, error) {
	escrow, err := scanEscrow(database.Conn(ctx, r.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find escrow",
			zap.Error(err),
			zap.Int64("arg", arg),
		)
		return nil, fmt.Errorf("find escrow %d: %w", arg, err)
	}

	return escrow, nil
}

func (r *escrowRepository) FindByID(ctx context.Context, id int64) (*entity.EscrowTransaction, error) {
	return r.findOne(ctx, `SELECT `+escrowColumns+` FROM escrow_transactions WHERE id = $1`, id)
}

func (r *escrowRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.EscrowTransaction, error) {
	return r.findOne(ctx, `SELECT `+escrowColumns+` FROM escrow_transactions WHERE id = $1 FOR UPDATE`, id)
}

func (r *escrowRepository) FindHeldByBookingID(ctx context.Context, bookingID int64) (*entity.EscrowTransaction, error) {
	return r.findOne(ctx, `SELECT `+escrowColumns+` FROM escrow_transactions
		WHERE booking_id = $1 AND status = 'held' FOR UPDATE`, bookingID)
}

func (r *escrowRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.EscrowTransaction, error) {
	query := `SELECT ` + escrowColumns + ` FROM escrow_transactions WHERE booking_id = $1 ORDER BY created_at DESC`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find escrows by booking",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find escrows by booking %d: %w", bookingID, err)
	}

	return r.collect(rows)
}

func (r *escrowRepository) FindAll(ctx context.Context, status *string, limit, offset int) ([]*entity.EscrowTransaction, error) {
	query := `SELECT ` + escrowColumns + ` FROM escrow_transactions`
	args := []any{}

	if status != nil && *status != "" {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list escrows",
			zap.Error(err),
			zap.Stringp("status", status),
		)
		return nil, fmt.Errorf("list escrows: %w", err)
	}

	return r.collect(rows)
}

func (r *escrowRepository) CountAll(ctx context.Context, status *string) (int64, error) {
	query := `SELECT COUNT(*) FROM escrow_transactions`
	args := []any{}

	if status != nil && *status != "" {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count escrows", zap.Error(err))
		return 0, fmt.Errorf("count escrows: %w", err)
	}

	return count, nil
}

// MarkReleased flips a held escrow to released. Zero rows means the escrow
// was already settled.
func (r *escrowRepository) MarkReleased(ctx context.Context, escrow *entity.EscrowTransaction) error {
	query := `
		UPDATE escrow_transactions
		SET status = 'released', released_at = $2
		WHERE id = $1 AND status = 'held'
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, escrow.ID, escrow.ReleasedAt)
	if err != nil {
		r.log.Error("Failed to release escrow",
			zap.Error(err),
			zap.Int64("escrow_id", escrow.ID),
		)
		return fmt.Errorf("release escrow %d: %w", escrow.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("escrow %d is not held", escrow.ID)
	}

	return nil
}

func (r *escrowRepository) MarkRefunded(ctx context.Context, escrow *entity.EscrowTransaction) error {
	query := `
		UPDATE escrow_transactions
		SET status = 'refunded', refunded_at = $2, refund_reason = $3
		WHERE id = $1 AND status = 'held'
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, escrow.ID, escrow.RefundedAt, escrow.RefundReason)
	if err != nil {
		r.log.Error("Failed to refund escrow",
			zap.Error(err),
			zap.Int64("escrow_id", escrow.ID),
		)
		return fmt.Errorf("refund escrow %d: %w", escrow.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("escrow %d is not held", escrow.ID)
	}

	return nil
}

func (r *escrowRepository) collect(rows pgx.Rows) ([]*entity.EscrowTransaction, error) {
	defer rows.Close()

	var escrows []*entity.EscrowTransaction
	for rows.Next() {
		escrow, err := scanEscrow(rows)
		if err != nil {
			r.log.Error("Failed to scan escrow row", zap.Error(err))
			return nil, fmt.Errorf("scan escrow row: %w", err)
		}
		escrows = append(escrows, escrow)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate escrow rows: %w", err)
	}

	return escrows, nil
}
