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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	SendOTP(ctx context.Context, email, otpType string) error
	VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) error

	// Authenticate resolves a bearer token to the acting user
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

type authService struct {
	repo     *repository.Repository // grouping userRepo, sessionRepo, otpRepo & cosplayerRepo
	tx       database.Transactor
	notifier NotificationService
	config   *utils.Config
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tx database.Transactor,
	notifier NotificationService,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		tx:       tx,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	role := entity.RoleCustomer
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}
	if role == entity.RoleCosplayer {
		if req.DisplayName == nil || *req.DisplayName == "" {
			return nil, utils.Validation("display_name is required for cosplayers")
		}
		if !req.PricePerHour.IsPositive() {
			return nil, utils.Validation("price_per_hour must be greater than zero")
		}
	}

	// 2. Cek email sudah terdaftar
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, utils.Conflict("email already registered")
	}

	// 3. Cek username sudah dipakai
	existingUser, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existingUser != nil {
		return nil, utils.Conflict("username already taken")
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 5. Simpan user (+ profil cosplayer) dalam satu transaksi
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{CreatedAt: now, UpdatedAt: now},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.User.Create(ctx, user); err != nil {
			return err
		}
		if role != entity.RoleCosplayer {
			return nil
		}

		cosplayer := &entity.Cosplayer{
			BaseNoDelete: entity.BaseNoDelete{CreatedAt: now, UpdatedAt: now},
			UserID:       user.ID,
			DisplayName:  *req.DisplayName,
			Category:     req.Category,
			PricePerHour: req.PricePerHour,
			IsAvailable:  true,
		}
		return s.repo.Cosplayer.Create(ctx, cosplayer)
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, utils.Conflict("email or username already registered")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	// 6. Kirim OTP; gagal kirim tidak membatalkan registrasi
	if err := s.SendOTP(ctx, user.Email, string(entity.OTPTypeEmailVerification)); err != nil {
		s.log.Warn("Failed to send verification OTP", zap.Error(err), zap.String("email", user.Email))
	}

	// 7. Auto login setelah register
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.Int64("user_id", user.ID))
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	s.notifier.Notify(ctx, user.ID, entity.NotifUserRegistered,
		"Welcome",
		fmt.Sprintf("Welcome aboard, %s", user.Username),
		map[string]any{"role": string(user.Role)},
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, utils.ValidationError(errs)
	}

	// 2. Cari by email, lalu by username
	user, err := s.repo.User.FindByEmail(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		user, err = s.repo.User.FindByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
	}

	// 3. User not found / password salah
	if user == nil {
		s.log.Warn("User not found for login", zap.String("identifier", req.Username))
		return nil, utils.Unauthorized("invalid credentials")
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, utils.Unauthorized("invalid credentials")
	}

	// 4. Check if user is active
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.Int64("user_id", user.ID))
		return nil, utils.Forbidden("account is deactivated")
	}

	// 5. Create session
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return utils.Unauthorized("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, utils.Unauthorized("invalid token format")
	}

	session, err := s.repo.Session.FindValidSession(ctx, tokenUUID.String())
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, utils.Unauthorized("invalid or expired session")
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("find session user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, utils.Unauthorized("account is not active")
	}

	return user, nil
}

func (s *authService) SendOTP(ctx context.Context, email, otpType string) error {
	typ := entity.OTPType(otpType)
	if typ != entity.OTPTypeEmailVerification && typ != entity.OTPTypePasswordReset {
		return utils.Validation("unknown otp type %q", otpType)
	}

	// 1. Find user
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return utils.NotFound("user not found")
	}

	// 2. Sudah terverifikasi
	if typ == entity.OTPTypeEmailVerification && user.EmailVerified {
		return utils.Conflict("email already verified")
	}

	// 3. Generate + simpan OTP
	now := time.Now()
	otp := &entity.OTP{
		BaseSimple: entity.BaseSimple{CreatedAt: now},
		UserID:     user.ID,
		Email:      email,
		OTPCode:    utils.GenerateOTP(s.config.OTP.Length),
		OTPType:    typ,
		ExpiresAt:  now.Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute),
	}
	if err := s.repo.OTP.Create(ctx, otp); err != nil {
		s.log.Error("Failed to save OTP", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("save otp: %w", err)
	}

	// Belum ada mailer: kode hanya muncul di log saat debug
	if s.config.App.Debug {
		s.log.Debug("OTP generated",
			zap.String("email", email),
			zap.String("otp_code", otp.OTPCode),
			zap.String("otp_type", otpType),
			zap.Time("expires_at", otp.ExpiresAt),
		)
	}

	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) error {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify email validation failed", zap.Any("errors", errs))
		return utils.ValidationError(errs)
	}

	// 2. Find valid OTP
	otp, err := s.repo.OTP.FindValidOTP(ctx, req.Email, req.OTP, entity.OTPTypeEmailVerification)
	if err != nil {
		return fmt.Errorf("find otp: %w", err)
	}
	if otp == nil {
		return utils.Validation("invalid or expired OTP")
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return utils.NotFound("user not found")
	}

	// 3. OTP dipakai + user verified
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.OTP.MarkAsUsed(ctx, otp.ID); err != nil {
			return err
		}

		user.EmailVerified = true
		user.UpdatedAt = time.Now()
		if err := s.repo.User.Update(ctx, user); err != nil {
			return err
		}

		s.log.Info("Email verified", zap.Int64("user_id", user.ID))
		return nil
	})
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID int64) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{CreatedAt: now},
		UserID:     userID,
		Token:      utils.GenerateSessionToken(),
		ExpiresAt:  now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
