package request

import "github.com/shopspring/decimal"

type CosplayerListRequest struct {
	PaginatedRequest
	Category      *string `json:"category,omitempty"`
	AvailableOnly bool    `json:"available_only"`
}

// UpdateCosplayerRequest only touches the fields that are present
type UpdateCosplayerRequest struct {
	DisplayName  *string          `json:"display_name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio          *string          `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Category     *string          `json:"category,omitempty" validate:"omitempty,max=50"`
	AvatarURL    *string          `json:"avatar_url,omitempty" validate:"omitempty,url"`
	PricePerHour *decimal.Decimal `json:"price_per_hour,omitempty"`
	IsAvailable  *bool            `json:"is_available,omitempty"`
}
