package adaptor

import (
	"net/http"

	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/payos"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreateCheckout handles POST /api/bookings/{id}/checkout
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	checkout, err := h.service.CreateCheckout(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "create checkout")
		return
	}

	utils.ResponseCreated(w, "Checkout created", checkout)
}

// PayWithWallet handles POST /api/bookings/{id}/pay-wallet
func (h *PaymentHandler) PayWithWallet(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	payment, err := h.service.PayWithWallet(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "pay with wallet")
		return
	}

	utils.ResponseSuccess(w, "Payment successful", payment)
}

// ListPayments handles GET /api/bookings/{id}/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	payments, err := h.service.ListBookingPayments(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "list payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

// Webhook handles POST /api/payments/webhook (gateway callback, signed)
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var payload payos.WebhookPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	if err := h.service.HandleWebhook(r.Context(), &payload); err != nil {
		handleServiceError(w, h.log, err, "handle webhook")
		return
	}

	utils.ResponseSuccess(w, "ok", nil)
}
