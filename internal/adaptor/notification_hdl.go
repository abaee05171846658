package adaptor

import (
	"net/http"

	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

type NotificationHandler struct {
	service usecase.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "notification")),
	}
}

// GetMyNotifications handles GET /api/user/notifications?unread=true
func (h *NotificationHandler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	req := pageFromQuery(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	items, err := h.service.GetMyNotifications(r.Context(), actor.UserID, &req, unreadOnly)
	if err != nil {
		handleServiceError(w, h.log, err, "get notifications")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// MarkAsRead handles PUT /api/user/notifications/{id}/read
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.MarkAsRead(r.Context(), actor.UserID, id); err != nil {
		handleServiceError(w, h.log, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "Notification marked as read", nil)
}
