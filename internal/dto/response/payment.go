package response

import (
	"time"

	"cosplay-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID            int64                `json:"id"`
	OrderCode     int64                `json:"order_code"`
	BookingID     int64                `json:"booking_id"`
	Amount        decimal.Decimal      `json:"amount"`
	Method        entity.PaymentMethod `json:"method"`
	Status        entity.PaymentStatus `json:"status"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	CheckoutURL   *string              `json:"checkout_url,omitempty"`
	ProcessingFee decimal.Decimal      `json:"processing_fee"`
	NetAmount     decimal.Decimal      `json:"net_amount"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type CheckoutResponse struct {
	PaymentID     int64           `json:"payment_id"`
	OrderCode     int64           `json:"order_code"`
	Amount        decimal.Decimal `json:"amount"`
	CheckoutURL   string          `json:"checkout_url"`
	PaymentLinkID string          `json:"payment_link_id"`
}

type EscrowResponse struct {
	ID              int64               `json:"id"`
	BookingID       int64               `json:"booking_id"`
	PaymentID       int64               `json:"payment_id"`
	CustomerID      int64               `json:"customer_id"`
	CosplayerID     int64               `json:"cosplayer_id"`
	Amount          decimal.Decimal     `json:"amount"`
	Status          entity.EscrowStatus `json:"status"`
	TransactionCode string              `json:"transaction_code"`
	RefundReason    *string             `json:"refund_reason,omitempty"`
	ReleasedAt      *time.Time          `json:"released_at,omitempty"`
	RefundedAt      *time.Time          `json:"refunded_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

type WalletTransactionResponse struct {
	ID           int64                          `json:"id"`
	Code         string                         `json:"code"`
	Type         entity.WalletTransactionType   `json:"type"`
	Amount       decimal.Decimal                `json:"amount"`
	Description  string                         `json:"description"`
	ReferenceID  *string                        `json:"reference_id,omitempty"`
	Status       entity.WalletTransactionStatus `json:"status"`
	BalanceAfter *decimal.Decimal               `json:"balance_after,omitempty"`
	ProcessedAt  *time.Time                     `json:"processed_at,omitempty"`
	CreatedAt    time.Time                      `json:"created_at"`
}

type BalanceResponse struct {
	UserID  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

type TopUpResponse struct {
	TransactionID int64           `json:"transaction_id"`
	Code          string          `json:"code"`
	OrderCode     int64           `json:"order_code"`
	Amount        decimal.Decimal `json:"amount"`
	CheckoutURL   string          `json:"checkout_url"`
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderCode:     p.Code,
		BookingID:     p.BookingID,
		Amount:        p.Amount,
		Method:        p.Method,
		Status:        p.Status,
		TransactionID: p.TransactionID,
		CheckoutURL:   p.CheckoutURL,
		ProcessingFee: p.ProcessingFee,
		NetAmount:     p.NetAmount,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}

func EscrowToResponse(e *entity.EscrowTransaction) EscrowResponse {
	return EscrowResponse{
		ID:              e.ID,
		BookingID:       e.BookingID,
		PaymentID:       e.PaymentID,
		CustomerID:      e.CustomerID,
		CosplayerID:     e.CosplayerID,
		Amount:          e.Amount,
		Status:          e.Status,
		TransactionCode: e.TransactionCode,
		RefundReason:    e.RefundReason,
		ReleasedAt:      e.ReleasedAt,
		RefundedAt:      e.RefundedAt,
		CreatedAt:       e.CreatedAt,
	}
}

func WalletTxToResponse(w *entity.WalletTransaction) WalletTransactionResponse {
	return WalletTransactionResponse{
		ID:           w.ID,
		Code:         w.Code,
		Type:         w.Type,
		Amount:       w.Amount,
		Description:  w.Description,
		ReferenceID:  w.ReferenceID,
		Status:       w.Status,
		BalanceAfter: w.BalanceAfter,
		ProcessedAt:  w.ProcessedAt,
		CreatedAt:    w.CreatedAt,
	}
}

// ReconcileResponse compares the cached balance with the ledger.
type ReconcileResponse struct {
	UserID     int64           `json:"user_id"`
	Balance    decimal.Decimal `json:"balance"`
	LedgerSum  decimal.Decimal `json:"ledger_sum"`
	Consistent bool            `json:"consistent"`
}
