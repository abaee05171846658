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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error

	// Wallet
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.User, error)
	UpdateWalletBalance(ctx context.Context, id int64, balance decimal.Decimal) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, username, email, password, phone, full_name, avatar_url, role,
		       email_verified, is_active, wallet_balance, created_at, updated_at, deleted_at`

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.FullName,
		&user.AvatarURL,
		&user.Role,
		&user.EmailVerified,
		&user.IsActive,
		&user.WalletBalance,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record and fills the generated id
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (username, email, password, phone, full_name, avatar_url, role,
		                  email_verified, is_active, wallet_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := database.Conn(ctx, ur.db).QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.FullName,
		user.AvatarURL,
		user.Role,
		user.EmailVerified,
		user.IsActive,
		user.WalletBalance,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` AND deleted_at IS NULL`

	user, err := scanUser(database.Conn(ctx, ur.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user",
			zap.Error(err),
			zap.String("where", where),
			zap.Any("arg", arg),
		)
		return nil, fmt.Errorf("find user by %s: %w", where, err)
	}

	return user, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return ur.findOne(ctx, "id = $1", id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "email = $1", email)
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return ur.findOne(ctx, "username = $1", username)
}

// FindByIDForUpdate locks the user row until the surrounding transaction ends.
// Every wallet balance change goes through this lock.
func (ur *userRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	user, err := scanUser(database.Conn(ctx, ur.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to lock user row",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return nil, fmt.Errorf("lock user %d: %w", id, err)
	}

	return user, nil
}

// FindAll retrieves paginated list of users
func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := database.Conn(ctx, ur.db).Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`

	var count int64
	err := database.Conn(ctx, ur.db).QueryRow(ctx, query).Scan(&count)
	if err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}

// Update writes profile fields. The wallet balance is only changed through
// UpdateWalletBalance.
func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, password = $4, phone = $5,
		    full_name = $6, avatar_url = $7, role = $8,
		    email_verified = $9, is_active = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := database.Conn(ctx, ur.db).Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.FullName,
		user.AvatarURL,
		user.Role,
		user.EmailVerified,
		user.IsActive,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found or already deleted", user.ID)
	}

	return nil
}

func (ur *userRepository) UpdateWalletBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	query := `UPDATE users SET wallet_balance = $2, updated_at = NOW() WHERE id = $1`

	result, err := database.Conn(ctx, ur.db).Exec(ctx, query, id, balance)
	if err != nil {
		ur.log.Error("Failed to update wallet balance",
			zap.Error(err),
			zap.Int64("user_id", id),
			zap.String("balance", balance.String()),
		)
		return fmt.Errorf("update wallet balance of user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := database.Conn(ctx, ur.db).Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.Int64("id", id),
		)
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	ur.log.Info("User deleted", zap.Int64("id", id))
	return nil
}
