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

	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, actor Actor, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetCosplayerReviews(ctx context.Context, cosplayerID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
}

type reviewService struct {
	repo *repository.Repository
	tx   database.Transactor
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, tx database.Transactor, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		tx:   tx,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, actor Actor, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	// Booking harus selesai dan milik customer ini
	booking, err := s.repo.Booking.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, utils.NotFound("booking %d not found", req.BookingID)
	}
	if booking.CustomerID != actor.UserID {
		return nil, utils.Forbidden("only the customer can review booking %s", booking.Code)
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, utils.Conflict("booking %s is not completed yet", booking.Code)
	}

	existing, err := s.repo.Review.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, utils.Conflict("booking %s has already been reviewed", booking.Code)
	}

	review := &entity.Review{
		BaseSimple:  entity.BaseSimple{CreatedAt: time.Now()},
		BookingID:   booking.ID,
		CustomerID:  actor.UserID,
		CosplayerID: booking.CosplayerID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}

	// Simpan review + hitung ulang rating
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.Cosplayer.FindByIDForUpdate(ctx, booking.CosplayerID); err != nil {
			return err
		}
		if err := s.repo.Review.Create(ctx, review); err != nil {
			if repository.IsUniqueViolation(err) {
				return utils.Conflict("booking %s has already been reviewed", booking.Code)
			}
			return err
		}
		return s.updateCosplayerRating(ctx, booking.CosplayerID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("booking_id", booking.ID),
		zap.Int64("cosplayer_id", booking.CosplayerID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetCosplayerReviews(ctx context.Context, cosplayerID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	req.Normalize()

	reviews, err := s.repo.Review.FindByCosplayerID(ctx, cosplayerID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get cosplayer reviews",
			zap.Error(err),
			zap.Int64("cosplayer_id", cosplayerID),
		)
		return nil, fmt.Errorf("get cosplayer reviews: %w", err)
	}

	total, err := s.repo.Review.CountByCosplayerID(ctx, cosplayerID)
	if err != nil {
		return nil, fmt.Errorf("count cosplayer reviews: %w", err)
	}

	return response.Paginate(reviews, response.ReviewToResponse, req.Page, req.PerPage, total), nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) updateCosplayerRating(ctx context.Context, cosplayerID int64) error {
	avgRating, count, err := s.repo.Review.GetCosplayerReviewStats(ctx, cosplayerID)
	if err != nil {
		return fmt.Errorf("get review stats: %w", err)
	}

	if err := s.repo.Cosplayer.UpdateRating(ctx, cosplayerID, avgRating, int(count)); err != nil {
		return fmt.Errorf("update cosplayer rating: %w", err)
	}

	s.log.Debug("Cosplayer rating updated",
		zap.Int64("cosplayer_id", cosplayerID),
		zap.Float64("new_rating", avgRating),
		zap.Int64("total_reviews", count),
	)

	return nil
}
