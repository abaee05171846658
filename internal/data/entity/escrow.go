package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type EscrowStatus string

const (
	EscrowStatusHeld     EscrowStatus = "held"
	EscrowStatusReleased EscrowStatus = "released"
	EscrowStatusRefunded EscrowStatus = "refunded"
)

// EscrowTransaction holds a booking's payment until the booking settles.
// Amount never changes after creation.
type EscrowTransaction struct {
	BaseSimple
	BookingID       int64           `db:"booking_id"`
	PaymentID       int64           `db:"payment_id"`
	CustomerID      int64           `db:"customer_id"`
	CosplayerID     int64           `db:"cosplayer_id"`
	Amount          decimal.Decimal `db:"amount"`
	Status          EscrowStatus    `db:"status"`
	TransactionCode string          `db:"transaction_code"`
	RefundReason    *string         `db:"refund_reason"`
	ReleasedAt      *time.Time      `db:"released_at"`
	RefundedAt      *time.Time      `db:"refunded_at"`
}
