package request

type CreateReviewRequest struct {
	BookingID int64   `json:"booking_id" validate:"required,gt=0"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
