package adaptor

import (
	"net/http"

	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

type CosplayerHandler struct {
	service usecase.CosplayerService
	log     *zap.Logger
}

func NewCosplayerHandler(service usecase.CosplayerService, log *zap.Logger) *CosplayerHandler {
	return &CosplayerHandler{
		service: service,
		log:     log.With(zap.String("handler", "cosplayer")),
	}
}

// ListCosplayers handles GET /api/cosplayers?category=&available=true (public)
func (h *CosplayerHandler) ListCosplayers(w http.ResponseWriter, r *http.Request) {
	req := &request.CosplayerListRequest{
		PaginatedRequest: pageFromQuery(r),
		Category:         optionalQuery(r, "category"),
		AvailableOnly:    r.URL.Query().Get("available") == "true",
	}

	cosplayers, err := h.service.ListCosplayers(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list cosplayers")
		return
	}

	utils.ResponseSuccess(w, "success", cosplayers)
}

// GetCosplayer handles GET /api/cosplayers/{id} (public)
func (h *CosplayerHandler) GetCosplayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	cosplayer, err := h.service.GetCosplayer(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get cosplayer")
		return
	}

	utils.ResponseSuccess(w, "success", cosplayer)
}

// GetBookedSlots handles GET /api/cosplayers/{id}/slots?date=2026-01-16 (public)
func (h *CosplayerHandler) GetBookedSlots(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Query parameter date is required", nil)
		return
	}

	slots, err := h.service.GetBookedSlots(r.Context(), id, date)
	if err != nil {
		handleServiceError(w, h.log, err, "get booked slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetMyProfile handles GET /api/cosplayers/me (cosplayer only)
func (h *CosplayerHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetMyProfile(r.Context(), actor.UserID)
	if err != nil {
		handleServiceError(w, h.log, err, "get cosplayer profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// UpdateMyProfile handles PUT /api/cosplayers/me (cosplayer only)
func (h *CosplayerHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateCosplayerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.service.UpdateMyProfile(r.Context(), actor.UserID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update cosplayer profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", profile)
}
