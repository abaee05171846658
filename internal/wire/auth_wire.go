package wire

import (
	"net/http"

	"cosplay-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, authMW func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/send-otp", authHandler.SendOTP)
		r.Post("/verify-email", authHandler.VerifyEmail)

		// ==================== PROTECTED ROUTES ====================
		r.With(authMW).Post("/logout", authHandler.Logout)
	})
}
