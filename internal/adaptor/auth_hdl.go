package adaptor

import (
	"net/http"

	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/auth/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// SendOTP handles POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	if err := h.service.SendOTP(r.Context(), req.Email, req.Type); err != nil {
		handleServiceError(w, h.log, err, "send OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent", nil)
}

// VerifyEmail handles POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.VerifyEmail(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "verify email")
		return
	}

	utils.ResponseSuccess(w, "Email verified successfully", nil)
}
