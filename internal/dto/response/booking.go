package response

import (
	"time"

	"cosplay-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID                 int64                       `json:"id"`
	Code               string                      `json:"code"`
	CustomerID         int64                       `json:"customer_id"`
	CosplayerID        int64                       `json:"cosplayer_id"`
	ServiceType        string                      `json:"service_type"`
	StartAt            time.Time                   `json:"start_at"`
	EndAt              time.Time                   `json:"end_at"`
	DurationMinutes    int                         `json:"duration_minutes"`
	Location           string                      `json:"location"`
	Notes              *string                     `json:"notes,omitempty"`
	TotalPrice         decimal.Decimal             `json:"total_price"`
	Status             entity.BookingStatus        `json:"status"`
	PaymentStatus      entity.BookingPaymentStatus `json:"payment_status"`
	CancellationReason *string                     `json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time                  `json:"completed_at,omitempty"`
	CancelledAt        *time.Time                  `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		Code:               b.Code,
		CustomerID:         b.CustomerID,
		CosplayerID:        b.CosplayerID,
		ServiceType:        b.ServiceType,
		StartAt:            b.StartAt,
		EndAt:              b.EndAt,
		DurationMinutes:    b.DurationMinutes,
		Location:           b.Location,
		Notes:              b.Notes,
		TotalPrice:         b.TotalPrice,
		Status:             b.Status,
		PaymentStatus:      b.PaymentStatus,
		CancellationReason: b.CancellationReason,
		CompletedAt:        b.CompletedAt,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
	}
}
