package wire

import (
	"net/http"

	"cosplay-booking/internal/adaptor"
	"cosplay-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAdmin configures escrow and wallet operations reserved for admins
func wireAdmin(
	r chi.Router,
	escrowHandler *adaptor.EscrowHandler,
	walletHandler *adaptor.WalletHandler,
	authMW func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMW)
		r.Use(middleware.Admin(log))

		r.Route("/escrows", func(r chi.Router) {
			r.Get("/", escrowHandler.ListEscrows) // ?status=held&page=1
			r.Get("/{id}", escrowHandler.GetEscrow)
			r.Post("/{id}/refund", escrowHandler.Refund)
			r.Post("/{id}/release", escrowHandler.Release)
		})

		r.Post("/wallets/{userID}/reconcile", walletHandler.Reconcile)
	})
}
