package adaptor

import (
	"net/http"

	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

// EscrowHandler serves the admin escrow endpoints.
type EscrowHandler struct {
	service usecase.EscrowService
	log     *zap.Logger
}

func NewEscrowHandler(service usecase.EscrowService, log *zap.Logger) *EscrowHandler {
	return &EscrowHandler{
		service: service,
		log:     log.With(zap.String("handler", "escrow")),
	}
}

// ListEscrows handles GET /api/admin/escrows?status=held
func (h *EscrowHandler) ListEscrows(w http.ResponseWriter, r *http.Request) {
	req := &request.EscrowListRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           optionalQuery(r, "status"),
	}

	escrows, err := h.service.ListEscrows(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list escrows")
		return
	}

	utils.ResponseSuccess(w, "success", escrows)
}

// GetEscrow handles GET /api/admin/escrows/{id}
func (h *EscrowHandler) GetEscrow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	escrow, err := h.service.GetEscrow(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get escrow")
		return
	}

	utils.ResponseSuccess(w, "success", escrow)
}

// Refund handles POST /api/admin/escrows/{id}/refund
func (h *EscrowHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.RefundEscrowRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	escrow, err := h.service.AdminRefund(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "refund escrow")
		return
	}

	utils.ResponseSuccess(w, "Escrow refunded", escrow)
}

// Release handles POST /api/admin/escrows/{id}/release
func (h *EscrowHandler) Release(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	escrow, err := h.service.AdminRelease(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "release escrow")
		return
	}

	utils.ResponseSuccess(w, "Escrow released", escrow)
}
