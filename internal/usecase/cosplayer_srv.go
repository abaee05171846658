package usecase

import (
	"context"
	"fmt"
	"time"

	"cosplay-booking/internal/data/repository"
	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/dto/response"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

type CosplayerService interface {
	// Public endpoints
	ListCosplayers(ctx context.Context, req *request.CosplayerListRequest) (*response.PaginatedResponse[response.CosplayerResponse], error)
	GetCosplayer(ctx context.Context, id int64) (*response.CosplayerResponse, error)
	GetBookedSlots(ctx context.Context, id int64, date string) ([]response.BookedSlotResponse, error)

	// Cosplayer endpoints
	GetMyProfile(ctx context.Context, userID int64) (*response.CosplayerResponse, error)
	UpdateMyProfile(ctx context.Context, userID int64, req *request.UpdateCosplayerRequest) (*response.CosplayerResponse, error)
}

type cosplayerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCosplayerService(repo *repository.Repository, log *zap.Logger) CosplayerService {
	return &cosplayerService{
		repo: repo,
		log:  log.With(zap.String("service", "cosplayer")),
	}
}

func (s *cosplayerService) ListCosplayers(ctx context.Context, req *request.CosplayerListRequest) (*response.PaginatedResponse[response.CosplayerResponse], error) {
	req.Normalize()

	filter := repository.CosplayerFilter{
		Category:      req.Category,
		AvailableOnly: req.AvailableOnly,
	}

	cosplayers, err := s.repo.Cosplayer.FindAll(ctx, req.Offset(), req.Limit(), filter)
	if err != nil {
		s.log.Error("Failed to list cosplayers", zap.Error(err))
		return nil, fmt.Errorf("list cosplayers: %w", err)
	}

	total, err := s.repo.Cosplayer.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count cosplayers: %w", err)
	}

	return response.Paginate(cosplayers, response.CosplayerToResponse, req.Page, req.PerPage, total), nil
}

func (s *cosplayerService) GetCosplayer(ctx context.Context, id int64) (*response.CosplayerResponse, error) {
	cosplayer, err := s.repo.Cosplayer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cosplayer: %w", err)
	}
	if cosplayer == nil {
		return nil, utils.NotFound("cosplayer %d not found", id)
	}

	resp := response.CosplayerToResponse(cosplayer)
	return &resp, nil
}

// GetBookedSlots lists the non-cancelled bookings of one day.
func (s *cosplayerService) GetBookedSlots(ctx context.Context, id int64, date string) ([]response.BookedSlotResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, utils.Validation("date must use the YYYY-MM-DD format")
	}

	cosplayer, err := s.repo.Cosplayer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cosplayer: %w", err)
	}
	if cosplayer == nil {
		return nil, utils.NotFound("cosplayer %d not found", id)
	}

	bookings, err := s.repo.Booking.FindActiveInRange(ctx, id, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("get booked slots: %w", err)
	}

	slots := make([]response.BookedSlotResponse, len(bookings))
	for i, b := range bookings {
		slots[i] = response.BookedSlotResponse{
			BookingID: b.ID,
			StartAt:   b.StartAt,
			EndAt:     b.EndAt,
			Status:    b.Status,
		}
	}
	return slots, nil
}

func (s *cosplayerService) GetMyProfile(ctx context.Context, userID int64) (*response.CosplayerResponse, error) {
	cosplayer, err := s.repo.Cosplayer.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cosplayer profile: %w", err)
	}
	if cosplayer == nil {
		return nil, utils.NotFound("cosplayer profile not found")
	}

	resp := response.CosplayerToResponse(cosplayer)
	return &resp, nil
}

func (s *cosplayerService) UpdateMyProfile(ctx context.Context, userID int64, req *request.UpdateCosplayerRequest) (*response.CosplayerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update cosplayer validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	cosplayer, err := s.repo.Cosplayer.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cosplayer profile: %w", err)
	}
	if cosplayer == nil {
		return nil, utils.NotFound("cosplayer profile not found")
	}

	if req.DisplayName != nil {
		cosplayer.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		cosplayer.Bio = req.Bio
	}
	if req.Category != nil {
		cosplayer.Category = req.Category
	}
	if req.AvatarURL != nil {
		cosplayer.AvatarURL = req.AvatarURL
	}
	if req.PricePerHour != nil {
		if !req.PricePerHour.IsPositive() {
			return nil, utils.Validation("price_per_hour must be greater than zero")
		}
		cosplayer.PricePerHour = *req.PricePerHour
	}
	if req.IsAvailable != nil {
		cosplayer.IsAvailable = *req.IsAvailable
	}
	cosplayer.UpdatedAt = time.Now()

	if err := s.repo.Cosplayer.Update(ctx, cosplayer); err != nil {
		s.log.Error("Failed to update cosplayer", zap.Error(err), zap.Int64("cosplayer_id", cosplayer.ID))
		return nil, fmt.Errorf("update cosplayer: %w", err)
	}

	s.log.Info("Cosplayer profile updated", zap.Int64("cosplayer_id", cosplayer.ID))

	resp := response.CosplayerToResponse(cosplayer)
	return &resp, nil
}
