package adaptor

import (
	"net/http"

	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

type WalletHandler struct {
	service usecase.WalletService
	log     *zap.Logger
}

func NewWalletHandler(service usecase.WalletService, log *zap.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		log:     log.With(zap.String("handler", "wallet")),
	}
}

// GetBalance handles GET /api/wallet/balance
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), actor.UserID)
	if err != nil {
		handleServiceError(w, h.log, err, "get balance")
		return
	}

	utils.ResponseSuccess(w, "success", balance)
}

// GetHistory handles GET /api/wallet/transactions
func (h *WalletHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	req := pageFromQuery(r)
	history, err := h.service.GetHistory(r.Context(), actor.UserID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get wallet history")
		return
	}

	utils.ResponseSuccess(w, "success", history)
}

// TopUp handles POST /api/wallet/topup
func (h *WalletHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.TopUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	topUp, err := h.service.InitiateTopUp(r.Context(), actor.UserID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "top up")
		return
	}

	utils.ResponseCreated(w, "Top up initiated", topUp)
}

// Reconcile handles GET /api/admin/wallets/{userID}/reconcile (admin only)
func (h *WalletHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	result, err := h.service.Reconcile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "reconcile wallet")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
