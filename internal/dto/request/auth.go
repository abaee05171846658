package request

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	Role     string  `json:"role,omitempty" validate:"omitempty,oneof=customer cosplayer"`

	// Cosplayer registration only
	DisplayName  *string         `json:"display_name,omitempty" validate:"omitempty,min=2,max=100"`
	Category     *string         `json:"category,omitempty" validate:"omitempty,max=50"`
	PricePerHour decimal.Decimal `json:"price_per_hour,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Type  string `json:"type" validate:"required,oneof=email_verification password_reset"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}
