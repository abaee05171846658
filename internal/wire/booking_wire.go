package wire

import (
	"net/http"

	"cosplay-booking/internal/adaptor"
	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	paymentHandler *adaptor.PaymentHandler,
	authMW func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.With(authMW).Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - customers request a session
		r.With(middleware.RequireRole(log, entity.RoleCustomer)).Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings?status=pending&as=cosplayer
		r.Get("/", bookingHandler.GetMyBookings)
		r.Get("/{id}", bookingHandler.GetBooking)

		r.With(middleware.RequireRole(log, entity.RoleCosplayer)).Put("/{id}/confirm", bookingHandler.ConfirmBooking)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
		r.Put("/{id}/complete", bookingHandler.CompleteBooking)

		// payment
		r.With(middleware.RequireRole(log, entity.RoleCustomer)).Post("/{id}/checkout", paymentHandler.CreateCheckout)
		r.With(middleware.RequireRole(log, entity.RoleCustomer)).Post("/{id}/pay-wallet", paymentHandler.PayWithWallet)
		r.Get("/{id}/payments", paymentHandler.ListPayments)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(authMW, middleware.Admin(log)).Get("/api/admin/bookings", bookingHandler.ListBookings)
}
