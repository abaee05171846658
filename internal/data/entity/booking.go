package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo encodes the booking state machine:
// pending -> confirmed|cancelled, confirmed -> completed|cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	}
	return false
}

type BookingPaymentStatus string

const (
	BookingPaymentPending  BookingPaymentStatus = "pending"
	BookingPaymentPaid     BookingPaymentStatus = "paid"
	BookingPaymentRefunded BookingPaymentStatus = "refunded"
)

type Booking struct {
	BaseNoDelete
	Code               string               `db:"code"`
	CustomerID         int64                `db:"customer_id"`
	CosplayerID        int64                `db:"cosplayer_id"`
	ServiceType        string               `db:"service_type"`
	StartAt            time.Time            `db:"start_at"`
	EndAt              time.Time            `db:"end_at"`
	DurationMinutes    int                  `db:"duration_minutes"`
	Location           string               `db:"location"`
	Notes              *string              `db:"notes"`
	TotalPrice         decimal.Decimal      `db:"total_price"`
	Status             BookingStatus        `db:"status"`
	PaymentStatus      BookingPaymentStatus `db:"payment_status"`
	CancellationReason *string              `db:"cancellation_reason"`
	CompletedAt        *time.Time           `db:"completed_at"`
	CancelledAt        *time.Time           `db:"cancelled_at"`
}
