package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sneakhaus/storefront/internal/backend"
)

type paymentAPIStub struct {
	order     *backend.OrderStatus
	err       error
	confirmed []*backend.PaymentRecord
}

func (s *paymentAPIStub) Status(context.Context, string) (*backend.OrderStatus, error) {
	return s.order, s.err
}

func (s *paymentAPIStub) Confirm(_ context.Context, _ string, rec *backend.PaymentRecord) (*backend.OrderStatus, error) {
	s.confirmed = append(s.confirmed, rec)
	return s.order, s.err
}

func TestGetOrder_Success(t *testing.T) {
	stub := &paymentAPIStub{order: &backend.OrderStatus{ID: "o1", Status: backend.StatusApproved, Total: 240}}
	handler := NewPaymentHandler(stub, 5*time.Second)

	rec := httptest.NewRecorder()
	req := withURLParam(sessionRequest("GET", "/api/v1/orders/o1", ""), "order_id", "o1")
	handler.GetOrder(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var order backend.OrderStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&order))
	assert.Equal(t, backend.StatusApproved, order.Status)
}

func TestGetOrder_NotFound(t *testing.T) {
	handler := NewPaymentHandler(&paymentAPIStub{err: backend.ErrOrderNotFound}, 5*time.Second)

	rec := httptest.NewRecorder()
	req := withURLParam(sessionRequest("GET", "/api/v1/orders/missing", ""), "order_id", "missing")
	handler.GetOrder(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var dto ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "Order not found", dto.Error)
}

func TestConfirm_WithGatewayCallback(t *testing.T) {
	stub := &paymentAPIStub{order: &backend.OrderStatus{ID: "o1", Status: backend.StatusApproved}}
	handler := NewPaymentHandler(stub, 5*time.Second)

	rec := httptest.NewRecorder()
	handler.Confirm(rec, sessionRequest("POST", "/api/v1/payment/confirm",
		`{"order_id": "o1", "razorpay_payment_id": "pay1", "razorpay_order_id": "plink1", "status": "success"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, stub.confirmed, 1)
	require.NotNil(t, stub.confirmed[0])
	assert.Equal(t, "pay1", stub.confirmed[0].PaymentID)
}

func TestConfirm_WithoutCallbackPassesNilRecord(t *testing.T) {
	stub := &paymentAPIStub{order: &backend.OrderStatus{ID: "o1", Status: backend.StatusPending}}
	handler := NewPaymentHandler(stub, 5*time.Second)

	rec := httptest.NewRecorder()
	handler.Confirm(rec, sessionRequest("POST", "/api/v1/payment/confirm", `{"order_id": "o1"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, stub.confirmed, 1)
	assert.Nil(t, stub.confirmed[0])
}

func TestConfirm_MissingOrderID(t *testing.T) {
	handler := NewPaymentHandler(&paymentAPIStub{}, 5*time.Second)

	rec := httptest.NewRecorder()
	handler.Confirm(rec, sessionRequest("POST", "/api/v1/payment/confirm", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirm_SaveFailure(t *testing.T) {
	handler := NewPaymentHandler(&paymentAPIStub{err: backend.ErrBackendFailure}, 5*time.Second)

	rec := httptest.NewRecorder()
	handler.Confirm(rec, sessionRequest("POST", "/api/v1/payment/confirm", `{"order_id": "o1"}`))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
