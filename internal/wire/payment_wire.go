package wire

import (
	"net/http"

	"cosplay-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(
	r chi.Router,
	walletHandler *adaptor.WalletHandler,
	paymentHandler *adaptor.PaymentHandler,
	authMW func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	// gateway callback, authenticated by its checksum
	r.Post("/api/payments/webhook", paymentHandler.Webhook)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.With(authMW).Route("/api/wallet", func(r chi.Router) {
		r.Get("/balance", walletHandler.GetBalance)
		r.Get("/transactions", walletHandler.GetHistory) // ?page=1&per_page=10
		r.Post("/topup", walletHandler.TopUp)
	})
}
