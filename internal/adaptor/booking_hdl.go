package adaptor

import (
	"net/http"

	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (customer)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// GetMyBookings handles GET /api/bookings?status=&as=cosplayer
func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	req := &request.BookingListRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           optionalQuery(r, "status"),
		As:               r.URL.Query().Get("as"),
	}

	bookings, err := h.service.ListMyBookings(r.Context(), actor, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get my bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/bookings/{id} (participants and admin)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ConfirmBooking handles PUT /api/bookings/{id}/confirm (booked cosplayer)
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.service.ConfirmBooking(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm booking")
		return
	}

	utils.ResponseSuccess(w, "Booking confirmed", booking)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel (participants and admin)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CancelBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), actor, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

// CompleteBooking handles PUT /api/bookings/{id}/complete (customer and admin)
func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	booking, err := h.service.CompleteBooking(r.Context(), actor, id)
	if err != nil {
		handleServiceError(w, h.log, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking completed", booking)
}

// ==================== ADMIN METHODS ====================

// ListBookings handles GET /api/admin/bookings?status= (admin only)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	req := &request.BookingListRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           optionalQuery(r, "status"),
	}

	bookings, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
