package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CosplayerFilter narrows catalogue listings. Zero value lists everything.
type CosplayerFilter struct {
	Category      *string
	AvailableOnly bool
}

type CosplayerRepository interface {
	Create(ctx context.Context, cosplayer *entity.Cosplayer) error
	FindByID(ctx context.Context, id int64) (*entity.Cosplayer, error)
	FindByUserID(ctx context.Context, userID int64) (*entity.Cosplayer, error)
	FindAll(ctx context.Context, offset, limit int, filter CosplayerFilter) ([]*entity.Cosplayer, error)
	CountAll(ctx context.Context, filter CosplayerFilter) (int64, error)
	Update(ctx context.Context, cosplayer *entity.Cosplayer) error

	// FindByIDForUpdate serialises concurrent bookings of one cosplayer
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Cosplayer, error)
	UpdateRating(ctx context.Context, id int64, rating float64, totalReviews int) error
}

type cosplayerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCosplayerRepository(db database.PgxIface, log *zap.Logger) CosplayerRepository {
	return &cosplayerRepository{
		db:  db,
		log: log.With(zap.String("repository", "cosplayer")),
	}
}

const cosplayerColumns = `id, user_id, display_name, bio, category, avatar_url, price_per_hour,
		       rating, total_reviews, is_available, created_at, updated_at`

func scanCosplayer(row rowScanner) (*entity.Cosplayer, error) {
	var c entity.Cosplayer
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.DisplayName,
		&c.Bio,
		&c.Category,
		&c.AvatarURL,
		&c.PricePerHour,
		&c.Rating,
		&c.TotalReviews,
		&c.IsAvailable,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cosplayerRepository) Create(ctx context.Context, cosplayer *entity.Cosplayer) error {
	query := `
		INSERT INTO cosplayers (user_id, display_name, bio, category, avatar_url, price_per_hour,
		                        rating, total_reviews, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		cosplayer.UserID,
		cosplayer.DisplayName,
		cosplayer.Bio,
		cosplayer.Category,
		cosplayer.AvatarURL,
		cosplayer.PricePerHour,
		cosplayer.Rating,
		cosplayer.TotalReviews,
		cosplayer.IsAvailable,
		cosplayer.CreatedAt,
		cosplayer.UpdatedAt,
	).Scan(&cosplayer.ID)

	if err != nil {
		r.log.Error("Failed to create cosplayer",
			zap.Error(err),
			zap.Int64("user_id", cosplayer.UserID),
		)
		return fmt.Errorf("failed to create cosplayer: %w", err)
	}

	return nil
}

func (r *cosplayerRepository) findOne(ctx context.Context, query string, arg int64) (*entity.Cosplayer, error) {
	cosplayer, err := scanCosplayer(database.Conn(ctx, r.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cosplayer",
			zap.Error(err),
			zap.Int64("arg", arg),
		)
		return nil, fmt.Errorf("failed to find cosplayer: %w", err)
	}

	return cosplayer, nil
}

func (r *cosplayerRepository) FindByID(ctx context.Context, id int64) (*entity.Cosplayer, error) {
	return r.findOne(ctx, `SELECT `+cosplayerColumns+` FROM cosplayers WHERE id = $1`, id)
}

func (r *cosplayerRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Cosplayer, error) {
	return r.findOne(ctx, `SELECT `+cosplayerColumns+` FROM cosplayers WHERE id = $1 FOR UPDATE`, id)
}

func (r *cosplayerRepository) FindByUserID(ctx context.Context, userID int64) (*entity.Cosplayer, error) {
	return r.findOne(ctx, `SELECT `+cosplayerColumns+` FROM cosplayers WHERE user_id = $1`, userID)
}

// filterClause renders the optional WHERE conditions starting at placeholder argStart
func (f CosplayerFilter) filterClause(argStart int) (string, []any) {
	var sb strings.Builder
	args := []any{}

	if f.Category != nil && *f.Category != "" {
		sb.WriteString(fmt.Sprintf(" AND category = $%d", argStart+len(args)))
		args = append(args, *f.Category)
	}
	if f.AvailableOnly {
		sb.WriteString(" AND is_available = true")
	}

	return sb.String(), args
}

func (r *cosplayerRepository) FindAll(ctx context.Context, offset, limit int, filter CosplayerFilter) ([]*entity.Cosplayer, error) {
	// Build query dengan optional filter
	where, args := filter.filterClause(1)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + cosplayerColumns + ` FROM cosplayers WHERE 1=1`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY rating DESC, id ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := database.Conn(ctx, r.db).Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all cosplayers",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
			zap.Stringp("category", filter.Category),
		)
		return nil, fmt.Errorf("failed to find cosplayers: %w", err)
	}
	defer rows.Close()

	var cosplayers []*entity.Cosplayer
	for rows.Next() {
		c, err := scanCosplayer(rows)
		if err != nil {
			r.log.Error("Failed to scan cosplayer row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan cosplayer: %w", err)
		}
		cosplayers = append(cosplayers, c)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Cosplayers found",
		zap.Int("count", len(cosplayers)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return cosplayers, nil
}

func (r *cosplayerRepository) CountAll(ctx context.Context, filter CosplayerFilter) (int64, error) {
	where, args := filter.filterClause(1)
	query := `SELECT COUNT(*) FROM cosplayers WHERE 1=1` + where

	var total int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count cosplayers",
			zap.Error(err),
			zap.Stringp("category", filter.Category),
		)
		return 0, fmt.Errorf("failed to count cosplayers: %w", err)
	}

	return total, nil
}

func (r *cosplayerRepository) Update(ctx context.Context, cosplayer *entity.Cosplayer) error {
	query := `
		UPDATE cosplayers
		SET display_name = $2, bio = $3, category = $4, avatar_url = $5,
		    price_per_hour = $6, is_available = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		cosplayer.ID,
		cosplayer.DisplayName,
		cosplayer.Bio,
		cosplayer.Category,
		cosplayer.AvatarURL,
		cosplayer.PricePerHour,
		cosplayer.IsAvailable,
		cosplayer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update cosplayer",
			zap.Error(err),
			zap.Int64("cosplayer_id", cosplayer.ID),
		)
		return fmt.Errorf("failed to update cosplayer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cosplayer %d not found", cosplayer.ID)
	}

	return nil
}

func (r *cosplayerRepository) UpdateRating(ctx context.Context, id int64, rating float64, totalReviews int) error {
	query := `UPDATE cosplayers SET rating = $2, total_reviews = $3, updated_at = NOW() WHERE id = $1`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query, id, rating, totalReviews)
	if err != nil {
		r.log.Error("Failed to update cosplayer rating",
			zap.Error(err),
			zap.Int64("cosplayer_id", id),
			zap.Float64("rating", rating),
		)
		return fmt.Errorf("failed to update rating: %w", err)
	}

	return nil
}
