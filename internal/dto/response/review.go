package response

import (
	"time"

	"cosplay-booking/internal/data/entity"
)

type ReviewResponse struct {
	ID          int64     `json:"id"`
	BookingID   int64     `json:"booking_id"`
	CustomerID  int64     `json:"customer_id"`
	CosplayerID int64     `json:"cosplayer_id"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type NotificationResponse struct {
	ID        int64                   `json:"id"`
	Type      entity.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func ReviewToResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		BookingID:   r.BookingID,
		CustomerID:  r.CustomerID,
		CosplayerID: r.CosplayerID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
	}
}
