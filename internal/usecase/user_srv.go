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

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *request.UpdateProfileRequest) (*response.UserResponse, error)

	// Admin endpoints
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID int64, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}

	// Hanya field yang dikirim
	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := us.userRepo.Update(ctx, user); err != nil {
		us.log.Error("Failed to update profile", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	req.Normalize()

	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Info("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("total_pages", utils.CalculateTotalPages(total, req.PerPage)),
	)

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

func (us *userService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return utils.NotFound("user not found")
	}

	if err := us.userRepo.Delete(ctx, userID); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.Int64("user_id", userID))
		return fmt.Errorf("delete user: %w", err)
	}

	us.log.Info("User deleted", zap.Int64("user_id", userID), zap.String("email", user.Email))
	return nil
}
