package request

import "github.com/shopspring/decimal"

type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}

type RefundEscrowRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type EscrowListRequest struct {
	PaginatedRequest
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=held released refunded"`
}
