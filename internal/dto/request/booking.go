package request

type CreateBookingRequest struct {
	CosplayerID int64   `json:"cosplayer_id" validate:"required,gt=0"`
	ServiceType string  `json:"service_type" validate:"required,max=50"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string  `json:"end_time" validate:"required,datetime=15:04"`
	Location    string  `json:"location" validate:"required,max=255"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// BookingListRequest is filled from query parameters
type BookingListRequest struct {
	PaginatedRequest
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	As     string  `json:"as,omitempty" validate:"omitempty,oneof=customer cosplayer"`
}
