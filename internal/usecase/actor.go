package usecase

import (
	"context"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/payos"
)

// Actor is the caller of a state-changing operation.
type Actor struct {
	UserID int64
	Role   entity.UserRole
}

const roleSystem entity.UserRole = "system"

// SystemActor is used by the sweep when it completes bookings.
var SystemActor = Actor{Role: roleSystem}

func (a Actor) IsAdmin() bool  { return a.Role == entity.RoleAdmin }
func (a Actor) IsSystem() bool { return a.Role == roleSystem }

// PaymentGateway is the hosted-checkout provider.
type PaymentGateway interface {
	CreatePaymentLink(ctx context.Context, orderCode, amount int64, description string) (*payos.CheckoutResult, error)
	VerifyWebhook(payload *payos.WebhookPayload) (*payos.WebhookData, error)
}

// EventPublisher sends notification events to the broker.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
