package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sneakhaus/storefront/internal/backend"
)

// PaymentAPI backs the post-payment confirmation view.
type PaymentAPI interface {
	Status(ctx context.Context, orderID string) (*backend.OrderStatus, error)
	Confirm(ctx context.Context, orderID string, rec *backend.PaymentRecord) (*backend.OrderStatus, error)
}

type PaymentHandler struct {
	payments PaymentAPI
	timeout  time.Duration
}

func NewPaymentHandler(payments PaymentAPI, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		timeout:  timeout,
	}
}

type ConfirmRequestDTO struct {
	OrderID        string `json:"order_id"`
	PaymentID      string `json:"razorpay_payment_id"`
	GatewayOrderID string `json:"razorpay_order_id"`
	Signature      string `json:"razorpay_signature"`
	Status         string `json:"status"`
}

func (h *PaymentHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")
	order, err := h.payments.Status(ctx, orderID)
	if err != nil {
		respondError(w, http.StatusNotFound, "order_not_found", "Order not found")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ConfirmRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.OrderID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "order_id is required")
		return
	}

	// a gateway callback is only recorded when the redirect carried one
	var rec *backend.PaymentRecord
	if req.PaymentID != "" {
		rec = &backend.PaymentRecord{
			PaymentID:      req.PaymentID,
			GatewayOrderID: req.GatewayOrderID,
			Signature:      req.Signature,
			OrderID:        req.OrderID,
			Status:         req.Status,
		}
	}

	order, err := h.payments.Confirm(ctx, req.OrderID, rec)
	if err != nil {
		if errors.Is(err, backend.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "order_not_found", "Order not found")
			return
		}
		respondError(w, http.StatusBadGateway, "payment_save_failed", "Failed to save payment info.")
		return
	}

	respondJSON(w, http.StatusOK, order)
}
