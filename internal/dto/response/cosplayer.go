package response

import (
	"time"

	"cosplay-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type CosplayerResponse struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	DisplayName  string          `json:"display_name"`
	Bio          *string         `json:"bio,omitempty"`
	Category     *string         `json:"category,omitempty"`
	AvatarURL    *string         `json:"avatar_url,omitempty"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	Rating       float64         `json:"rating"`
	TotalReviews int             `json:"total_reviews"`
	IsAvailable  bool            `json:"is_available"`
}

type BookedSlotResponse struct {
	BookingID int64                `json:"booking_id"`
	StartAt   time.Time            `json:"start_at"`
	EndAt     time.Time            `json:"end_at"`
	Status    entity.BookingStatus `json:"status"`
}

func CosplayerToResponse(c *entity.Cosplayer) CosplayerResponse {
	return CosplayerResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		DisplayName:  c.DisplayName,
		Bio:          c.Bio,
		Category:     c.Category,
		AvatarURL:    c.AvatarURL,
		PricePerHour: c.PricePerHour,
		Rating:       c.Rating,
		TotalReviews: c.TotalReviews,
		IsAvailable:  c.IsAvailable,
	}
}
