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

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTP) error
	FindValidOTP(ctx context.Context, email, otpCode string, otpType entity.OTPType) (*entity.OTP, error)
	MarkAsUsed(ctx context.Context, otpID int64) error
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTP) error {
	query := `
		INSERT INTO otps (user_id, email, otp_code, otp_type, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		otp.UserID,
		otp.Email,
		otp.OTPCode,
		otp.OTPType,
		otp.ExpiresAt,
		otp.IsUsed,
		otp.CreatedAt,
	).Scan(&otp.ID)

	if err != nil {
		r.log.Error("Failed to create OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
			zap.String("otp_type", string(otp.OTPType)),
		)
		return fmt.Errorf("create OTP for %s: %w", otp.Email, err)
	}

	return nil
}

// FindValidOTP returns the newest unused, unexpired code matching email and type
func (r *otpRepository) FindValidOTP(ctx context.Context, email, otpCode string, otpType entity.OTPType) (*entity.OTP, error) {
	query := `
		SELECT id, user_id, email, otp_code, otp_type,
		       expires_at, is_used, created_at
		FROM otps
		WHERE email = $1
		  AND otp_code = $2
		  AND otp_type = $3
		  AND is_used = false
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTP
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, email, otpCode, otpType).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Email,
		&otp.OTPCode,
		&otp.OTPType,
		&otp.ExpiresAt,
		&otp.IsUsed,
		&otp.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid OTP",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find OTP for %s: %w", email, err)
	}

	return &otp, nil
}

func (r *otpRepository) MarkAsUsed(ctx context.Context, otpID int64) error {
	query := `UPDATE otps SET is_used = true WHERE id = $1 AND is_used = false`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, otpID)
	if err != nil {
		r.log.Error("Failed to mark OTP as used",
			zap.Error(err),
			zap.Int64("otp_id", otpID),
		)
		return fmt.Errorf("mark OTP %d as used: %w", otpID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("OTP %d not found or already used", otpID)
	}

	return nil
}
