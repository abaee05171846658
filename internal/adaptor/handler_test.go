package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/dto/request"
	"cosplay-booking/internal/dto/response"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/pkg/payos"
	"cosplay-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHandleServiceError_StatusByKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", utils.Validation("bad slot"), http.StatusBadRequest},
		{"not found", utils.NotFound("booking 1 not found"), http.StatusNotFound},
		{"conflict", utils.Conflict("already booked"), http.StatusConflict},
		{"forbidden", utils.Forbidden("not yours"), http.StatusForbidden},
		{"unauthorized", utils.Unauthorized("bad token"), http.StatusUnauthorized},
		{"external", utils.External(errors.New("dial tcp"), "payment gateway unavailable"), http.StatusBadGateway},
		{"wrapped conflict", errors.Join(errors.New("ctx"), utils.Conflict("dup")), http.StatusConflict},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandleServiceError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), errors.New("pq: password authentication failed"), "test")

	body := decodeBody(t, rec)
	assert.False(t, body.Status)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestHandleServiceError_FieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), utils.ValidationError(map[string]string{"reason": "This field is required"}), "test")

	body := decodeBody(t, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"reason": "This field is required"}, body.Errors)
}

type stubBookingService struct {
	usecase.BookingService
	gotActor usecase.Actor
	gotID    int64
	gotReq   *request.CancelBookingRequest
	err      error
}

func (s *stubBookingService) CancelBooking(_ context.Context, actor usecase.Actor, id int64, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	s.gotActor, s.gotID, s.gotReq = actor, id, req
	if s.err != nil {
		return nil, s.err
	}
	return &response.BookingResponse{ID: id, Status: entity.BookingStatusCancelled}, nil
}

func cancelRouter(h *BookingHandler) http.Handler {
	r := chi.NewRouter()
	r.Put("/api/bookings/{id}/cancel", h.CancelBooking)
	return r
}

func TestCancelBooking_PassesActorAndReason(t *testing.T) {
	svc := &stubBookingService{}
	h := NewBookingHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/42/cancel", strings.NewReader(`{"reason":"sick"}`))
	req = req.WithContext(utils.SetUserContext(req.Context(), 10, "customer"))
	rec := httptest.NewRecorder()

	cancelRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.Actor{UserID: 10, Role: entity.RoleCustomer}, svc.gotActor)
	assert.Equal(t, int64(42), svc.gotID)
	assert.Equal(t, "sick", svc.gotReq.Reason)
}

func TestCancelBooking_RequiresActor(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/42/cancel", strings.NewReader(`{"reason":"sick"}`))
	rec := httptest.NewRecorder()

	cancelRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelBooking_BadID(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/abc/cancel", strings.NewReader(`{"reason":"sick"}`))
	req = req.WithContext(utils.SetUserContext(req.Context(), 10, "customer"))
	rec := httptest.NewRecorder()

	cancelRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelBooking_TerminalIsConflict(t *testing.T) {
	svc := &stubBookingService{err: utils.Conflict("booking BK-1 cannot change from completed to cancelled")}
	h := NewBookingHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/42/cancel", strings.NewReader(`{"reason":"late"}`))
	req = req.WithContext(utils.SetUserContext(req.Context(), 10, "customer"))
	rec := httptest.NewRecorder()

	cancelRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

type stubPaymentService struct {
	usecase.PaymentService
	payload *payos.WebhookPayload
	err     error
}

func (s *stubPaymentService) HandleWebhook(_ context.Context, payload *payos.WebhookPayload) error {
	s.payload = payload
	return s.err
}

func TestWebhook(t *testing.T) {
	body := `{"code":"00","desc":"success","success":true,"data":{"orderCode":123,"amount":50000},"signature":"abc"}`

	t.Run("acknowledged", func(t *testing.T) {
		svc := &stubPaymentService{}
		h := NewPaymentHandler(svc, zap.NewNop())
		rec := httptest.NewRecorder()

		h.Webhook(rec, httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.payload)
		assert.Equal(t, "abc", svc.payload.Signature)
	})

	t.Run("bad signature", func(t *testing.T) {
		svc := &stubPaymentService{err: utils.Validation("invalid webhook signature")}
		h := NewPaymentHandler(svc, zap.NewNop())
		rec := httptest.NewRecorder()

		h.Webhook(rec, httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &stubPaymentService{}
		h := NewPaymentHandler(svc, zap.NewNop())
		rec := httptest.NewRecorder()

		h.Webhook(rec, httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.payload)
	})
}
