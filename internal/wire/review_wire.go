package wire

import (
	"net/http"

	"cosplay-booking/internal/adaptor"
	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	authMW func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// GET /api/cosplayers/{id}/reviews is public, see wireCosplayer

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.With(
		authMW,
		middleware.RequireRole(log, entity.RoleCustomer),
	).Post("/api/reviews", reviewHandler.CreateReview)
}
