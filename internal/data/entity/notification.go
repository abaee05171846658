package entity

type NotificationType string

const (
	NotifBookingCreated   NotificationType = "booking.created"
	NotifBookingConfirmed NotificationType = "booking.confirmed"
	NotifBookingCancelled NotificationType = "booking.cancelled"
	NotifBookingCompleted NotificationType = "booking.completed"
	NotifBookingReminder  NotificationType = "booking.reminder"
	NotifPaymentPaid      NotificationType = "payment.paid"
	NotifWalletTopUp      NotificationType = "wallet.topup"
	NotifEscrowRefunded   NotificationType = "escrow.refunded"
	NotifUserRegistered   NotificationType = "user.registered"
)

type Notification struct {
	BaseSimple
	UserID  int64            `db:"user_id"`
	Type    NotificationType `db:"type"`
	Title   string           `db:"title"`
	Message string           `db:"message"`
	IsRead  bool             `db:"is_read"`
}
