package response

import (
	"time"

	"cosplay-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type AuthResponse struct {
	UserID     int64           `json:"user_id"`
	Token      string          `json:"token"`
	ExpiresAt  time.Time       `json:"expires_at"`
	Email      string          `json:"email"`
	Username   string          `json:"username"`
	Role       entity.UserRole `json:"role"`
	IsVerified bool            `json:"is_verified"`
}

type UserResponse struct {
	ID            int64           `json:"id"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	Phone         *string         `json:"phone,omitempty"`
	FullName      *string         `json:"full_name,omitempty"`
	AvatarURL     *string         `json:"avatar_url,omitempty"`
	Role          entity.UserRole `json:"role"`
	IsVerified    bool            `json:"is_verified"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		Phone:         user.Phone,
		FullName:      user.FullName,
		AvatarURL:     user.AvatarURL,
		Role:          user.Role,
		IsVerified:    user.EmailVerified,
		WalletBalance: user.WalletBalance,
		CreatedAt:     user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{
		UserID:     user.ID,
		Email:      user.Email,
		Username:   user.Username,
		Role:       user.Role,
		IsVerified: user.EmailVerified,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
