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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByBookingID(ctx context.Context, bookingID int64) (*entity.Review, error)
	FindByCosplayerID(ctx context.Context, cosplayerID int64, limit, offset int) ([]*entity.Review, error)
	CountByCosplayerID(ctx context.Context, cosplayerID int64) (int64, error)

	// Business queries
	GetCosplayerReviewStats(ctx context.Context, cosplayerID int64) (float64, int64, error) // rating, count
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (booking_id, customer_id, cosplayer_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		review.BookingID,
		review.CustomerID,
		review.CosplayerID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	).Scan(&review.ID)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("booking_id", review.BookingID),
			zap.Int64("customer_id", review.CustomerID),
		)
		return fmt.Errorf("create review for booking %d: %w", review.BookingID, err)
	}

	return nil
}

func (r *reviewRepository) FindByBookingID(ctx context.Context, bookingID int64) (*entity.Review, error) {
	query := `
		SELECT id, booking_id, customer_id, cosplayer_id, rating, comment, created_at
		FROM reviews
		WHERE booking_id = $1
	`

	var review entity.Review
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, bookingID).Scan(
		&review.ID,
		&review.BookingID,
		&review.CustomerID,
		&review.CosplayerID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by booking",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find review by booking %d: %w", bookingID, err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByCosplayerID(ctx context.Context, cosplayerID int64, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, booking_id, customer_id, cosplayer_id, rating, comment, created_at
		FROM reviews
		WHERE cosplayer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, cosplayerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by cosplayer",
			zap.Error(err),
			zap.Int64("cosplayer_id", cosplayerID),
		)
		return nil, fmt.Errorf("find reviews by cosplayer %d: %w", cosplayerID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.BookingID,
			&review.CustomerID,
			&review.CosplayerID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByCosplayerID(ctx context.Context, cosplayerID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE cosplayer_id = $1`

	var count int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, cosplayerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews",
			zap.Error(err),
			zap.Int64("cosplayer_id", cosplayerID),
		)
		return 0, fmt.Errorf("count reviews by cosplayer %d: %w", cosplayerID, err)
	}

	return count, nil
}

func (r *reviewRepository) GetCosplayerReviewStats(ctx context.Context, cosplayerID int64) (float64, int64, error) {
	query := `
		SELECT
			COALESCE(AVG(rating), 0)::float8 AS avg_rating,
			COUNT(*) AS review_count
		FROM reviews
		WHERE cosplayer_id = $1
	`

	var avgRating float64
	var reviewCount int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, cosplayerID).Scan(&avgRating, &reviewCount)
	if err != nil {
		r.log.Error("Failed to get review stats",
			zap.Error(err),
			zap.Int64("cosplayer_id", cosplayerID),
		)
		return 0, 0, fmt.Errorf("review stats of cosplayer %d: %w", cosplayerID, err)
	}

	return avgRating, reviewCount, nil
}
