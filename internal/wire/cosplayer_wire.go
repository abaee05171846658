package wire

import (
	"net/http"

	"cosplay-booking/internal/adaptor"
	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCosplayer(
	r chi.Router,
	cosplayerHandler *adaptor.CosplayerHandler,
	reviewHandler *adaptor.ReviewHandler,
	authMW func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.Route("/api/cosplayers", func(r chi.Router) {
		// ==================== COSPLAYER ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Use(middleware.RequireRole(log, entity.RoleCosplayer))

			r.Get("/me", cosplayerHandler.GetMyProfile)
			r.Put("/me", cosplayerHandler.UpdateMyProfile)
		})

		// ==================== PUBLIC ROUTES ====================
		// GET /api/cosplayers?category=anime&available=true&page=1
		r.Get("/", cosplayerHandler.ListCosplayers)
		r.Get("/{id}", cosplayerHandler.GetCosplayer)
		// GET /api/cosplayers/{id}/slots?date=2026-01-31
		r.Get("/{id}/slots", cosplayerHandler.GetBookedSlots)
		r.Get("/{id}/reviews", reviewHandler.GetCosplayerReviews)
	})
}
