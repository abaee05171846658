package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodPayOS  PaymentMethod = "payos"
	PaymentMethodWallet PaymentMethod = "wallet"
)

// Payment is one attempt to pay a booking. Code is the numeric order code
// sent to the gateway.
type Payment struct {
	BaseNoDelete
	Code          int64           `db:"code"`
	BookingID     int64           `db:"booking_id"`
	Amount        decimal.Decimal `db:"amount"`
	Method        PaymentMethod   `db:"method"`
	Status        PaymentStatus   `db:"status"`
	TransactionID *string         `db:"transaction_id"`
	PaymentLinkID *string         `db:"payment_link_id"`
	CheckoutURL   *string         `db:"checkout_url"`
	ProcessingFee decimal.Decimal `db:"processing_fee"`
	NetAmount     decimal.Decimal `db:"net_amount"`
	PaidAt        *time.Time      `db:"paid_at"`
}
