package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Cosplayer    *CosplayerHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Wallet       *WalletHandler
	Escrow       *EscrowHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Cosplayer:    NewCosplayerHandler(service.Cosplayer, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Wallet:       NewWalletHandler(service.Wallet, log),
		Escrow:       NewEscrowHandler(service.Escrow, log),
		Review:       NewReviewHandler(service.Review, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}

// handleServiceError maps service error kinds to status codes. Anything
// without a kind is logged and hidden behind a 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *utils.Error
	errors.As(err, &appErr)

	switch {
	case errors.Is(err, utils.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		if appErr != nil && len(appErr.Fields) > 0 {
			utils.ResponseBadRequest(w, "Validation failed", appErr.Fields)
			return
		}
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, utils.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, utils.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, utils.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, utils.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, utils.ErrExternal):
		log.Error(operation+" failed - upstream", zap.Error(err))
		utils.ResponseBadGateway(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// actorFromRequest reads the caller set by the auth middleware.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return usecase.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return usecase.Actor{UserID: userID, Role: entity.UserRole(role)}, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

func pageFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// optionalQuery returns nil for an absent or empty parameter.
func optionalQuery(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}
