package repository

import (
	"context"
	"errors"
	"fmt"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WalletRepository is append-only apart from settling pending top-ups.
type WalletRepository interface {
	Create(ctx context.Context, tx *entity.WalletTransaction) error
	FindByOrderCodeForUpdate(ctx context.Context, orderCode int64) (*entity.WalletTransaction, error)
	FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.WalletTransaction, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	CompletePending(ctx context.Context, tx *entity.WalletTransaction) error
	FailPending(ctx context.Context, id int64) error

	// SignedSum adds completed credits and subtracts completed debits
	SignedSum(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type walletRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWalletRepository(db database.PgxIface, log *zap.Logger) WalletRepository {
	return &walletRepository{
		db:  db,
		log: log.With(zap.String("repository", "wallet")),
	}
}

const walletColumns = `id, user_id, code, order_code, type, amount, description, reference_id,
		       status, balance_after, processed_at, created_at`

func scanWalletTx(row rowScanner) (*entity.WalletTransaction, error) {
	var w entity.WalletTransaction
	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Code,
		&w.OrderCode,
		&w.Type,
		&w.Amount,
		&w.Description,
		&w.ReferenceID,
		&w.Status,
		&w.BalanceAfter,
		&w.ProcessedAt,
		&w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *walletRepository) Create(ctx context.Context, tx *entity.WalletTransaction) error {
	query := `
		INSERT INTO wallet_transactions (user_id, code, order_code, type, amount, description,
		                                 reference_id, status, balance_after, processed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		tx.UserID,
		tx.Code,
		tx.OrderCode,
		tx.Type,
		tx.Amount,
		tx.Description,
		tx.ReferenceID,
		tx.Status,
		tx.BalanceAfter,
		tx.ProcessedAt,
		tx.CreatedAt,
	).Scan(&tx.ID)

	if err != nil {
		r.log.Error("Failed to create wallet transaction",
			zap.Error(err),
			zap.Int64("user_id", tx.UserID),
			zap.String("type", string(tx.Type)),
			zap.String("amount", tx.Amount.String()),
		)
		return fmt.Errorf("create wallet transaction %s: %w", tx.Code, err)
	}

	return nil
}

func (r *walletRepository) FindByOrderCodeForUpdate(ctx context.Context, orderCode int64) (*entity.WalletTransaction, error) {
	query := `SELECT ` + walletColumns + ` FROM wallet_transactions WHERE order_code = $1 FOR UPDATE`

	tx, err := scanWalletTx(database.Conn(ctx, r.db).QueryRow(ctx, query, orderCode))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find wallet transaction by order code",
			zap.Error(err),
			zap.Int64("order_code", orderCode),
		)
		return nil, fmt.Errorf("find wallet transaction by order code %d: %w", orderCode, err)
	}

	return tx, nil
}

// FindByUserID returns history newest first. Settled top-ups sort by the
// moment they were processed.
func (r *walletRepository) FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.WalletTransaction, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY COALESCE(processed_at, created_at) DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find wallet history",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find wallet history of user %d: %w", userID, err)
	}
	defer rows.Close()

	var txs []*entity.WalletTransaction
	for rows.Next() {
		tx, err := scanWalletTx(rows)
		if err != nil {
			r.log.Error("Failed to scan wallet row", zap.Error(err))
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}

	return txs, nil
}

func (r *walletRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM wallet_transactions WHERE user_id = $1`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count wallet transactions", zap.Error(err))
		return 0, fmt.Errorf("count wallet transactions of user %d: %w", userID, err)
	}

	return count, nil
}

// CompletePending settles a pending row, stamping balance_after and processed_at
func (r *walletRepository) CompletePending(ctx context.Context, tx *entity.WalletTransaction) error {
	query := `
		UPDATE wallet_transactions
		SET status = 'completed', balance_after = $2, processed_at = $3, reference_id = COALESCE($4, reference_id)
		WHERE id = $1 AND status = 'pending'
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, tx.ID, tx.BalanceAfter, tx.ProcessedAt, tx.ReferenceID)
	if err != nil {
		r.log.Error("Failed to complete wallet transaction",
			zap.Error(err),
			zap.Int64("wallet_tx_id", tx.ID),
		)
		return fmt.Errorf("complete wallet transaction %d: %w", tx.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wallet transaction %d is not pending", tx.ID)
	}

	return nil
}

func (r *walletRepository) FailPending(ctx context.Context, id int64) error {
	query := `UPDATE wallet_transactions SET status = 'failed', processed_at = NOW() WHERE id = $1 AND status = 'pending'`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to fail wallet transaction",
			zap.Error(err),
			zap.Int64("wallet_tx_id", id),
		)
		return fmt.Errorf("fail wallet transaction %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wallet transaction %d is not pending", id)
	}

	return nil
}

func (r *walletRepository) SignedSum(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'debit' THEN -amount ELSE amount END), 0)
		FROM wallet_transactions
		WHERE user_id = $1 AND status = 'completed'
	`

	var sum decimal.Decimal
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		r.log.Error("Failed to sum wallet transactions",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return decimal.Zero, fmt.Errorf("sum wallet of user %d: %w", userID, err)
	}

	return sum, nil
}
