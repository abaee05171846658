package wire

import (
	"net/http"

	"cosplay-booking/internal/adaptor"
	"cosplay-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures profile, inbox and admin user routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	notificationHandler *adaptor.NotificationHandler,
	authMW func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(authMW).Route("/api/user", func(r chi.Router) {
		r.Get("/profile", userHandler.GetProfile)
		r.Put("/profile", userHandler.UpdateProfile)

		r.Get("/notifications", notificationHandler.GetMyNotifications) // ?unread=true
		r.Put("/notifications/{id}/read", notificationHandler.MarkAsRead)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(
		authMW,
		middleware.Admin(log),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)       // GET /api/admin/users?page=1&per_page=10
		r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/admin/users/{user-id}
	})
}
