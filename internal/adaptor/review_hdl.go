package adaptor

import (
	"net/http"

	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// GetCosplayerReviews handles GET /api/cosplayers/{id}/reviews (public)
func (h *ReviewHandler) GetCosplayerReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req := pageFromQuery(r)
	reviews, err := h.service.GetCosplayerReviews(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get cosplayer reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}
