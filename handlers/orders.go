package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"order-service/internal/apperr"
	"order-service/internal/gateway"
	"order-service/internal/orders"
	"order-service/internal/stores/kafka"
	"order-service/pkg/ctxmanage"
	"order-service/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type createOrderRequest struct {
	Amount          int64              `json:"amount" validate:"required"`
	Currency        string             `json:"currency"`
	OrderItems      []orders.OrderItem `json:"orderItems" validate:"required,min=1,dive"`
	DeliveryAddress *orders.Address    `json:"deliveryAddress" validate:"required"`
	PhoneNumber     string             `json:"phoneNumber" validate:"required,e164"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
	OrderID           string `json:"orderId"`
}

type paymentFailedRequest struct {
	OrderID          string `json:"orderId"`
	ErrorDescription string `json:"errorDescription"`
	ErrorReason      string `json:"errorReason"`
}

// CreateOrder persists a pending order from the client-declared cart total,
// creates the matching gateway order and hands the UI everything it needs to
// open the hosted checkout. The amount is fixed here and never recomputed
// from the gateway's echo.
func (h *Handler) CreateOrder(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := callerClaims(c)
	if !ok {
		slog.Error("claims not found", slog.String(logkey.TraceID, traceId))
		fail(c, apperr.Unauthenticated("User must be authenticated"))
		return
	}
	userId := claims.Subject

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid request body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.InvalidArgument("Invalid request body"))
		return
	}

	if req.Amount == 0 || len(req.OrderItems) == 0 || req.DeliveryAddress == nil || req.PhoneNumber == "" {
		slog.Error("missing required order data", slog.String(logkey.TraceID, traceId))
		fail(c, apperr.InvalidArgument("Missing required order data"))
		return
	}
	if req.Amount < orders.MinOrderAmount || req.Amount > orders.MaxOrderAmount {
		slog.Error("amount out of bounds", slog.String(logkey.TraceID, traceId), slog.Int64("amount", req.Amount))
		fail(c, apperr.InvalidArgument("Invalid amount: must be between ₹1 and ₹50,000"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			vErr := vErrs[0]
			slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			switch vErr.Tag() {
			case "e164":
				fail(c, apperr.InvalidArgument("Invalid phone number"))
			default:
				fail(c, apperr.InvalidArgument(vErr.Field()+" value invalid"))
			}
			return
		}
		slog.Error("validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.InvalidArgument("Missing required order data"))
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	order := orders.Order{
		ID:              uuid.NewString(),
		UserID:          userId,
		Items:           req.OrderItems,
		Amount:          req.Amount,
		Currency:        currency,
		DeliveryAddress: *req.DeliveryAddress,
		PhoneNumber:     req.PhoneNumber,
		Status:          orders.StatusPending,
	}
	if err := h.o.CreateOrder(c.Request.Context(), order); err != nil {
		slog.Error("error creating order", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.Internal("Failed to create order"))
		return
	}

	// Receipt and notes are opaque reconciliation fields echoed back by the
	// gateway; they carry no control flow.
	gatewayOrder, err := h.g.CreateOrder(order.Amount, order.Currency, order.ID, map[string]interface{}{
		"orderId":     order.ID,
		"userId":      userId,
		"phoneNumber": order.PhoneNumber,
	})
	if err != nil {
		// The local order stays pending with no gateway reference; the
		// client may retry create-order for a fresh attempt.
		slog.Error("error creating gateway order", slog.String(logkey.TraceID, traceId),
			slog.String("OrderID", order.ID), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.Internal("Failed to create order"))
		return
	}

	if err := h.o.SetRazorpayOrderID(c.Request.Context(), order.ID, gatewayOrder.ID); err != nil {
		slog.Error("error attaching gateway order id", slog.String(logkey.TraceID, traceId),
			slog.String("OrderID", order.ID), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.Internal("Failed to create order"))
		return
	}

	slog.Info("gateway order created", slog.String(logkey.TraceID, traceId),
		slog.String("OrderID", order.ID), slog.String("GatewayOrderID", gatewayOrder.ID),
		slog.Int64("Amount", order.Amount), slog.String("UserID", userId))

	c.JSON(http.StatusOK, gin.H{
		"orderId":        order.ID,
		"gatewayOrderId": gatewayOrder.ID,
		"amount":         order.Amount,
		"currency":       order.Currency,
		"gatewayKey":     h.g.KeyID(),
	})
}

// VerifyPayment closes out the payment callback from the hosted checkout:
// recompute the signature, confirm the payment against the gateway's own
// record, then move the order to paid. Both failure branches durably mark
// the order failed before returning the error.
func (h *Handler) VerifyPayment(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := callerClaims(c)
	if !ok {
		slog.Error("claims not found", slog.String(logkey.TraceID, traceId))
		fail(c, apperr.Unauthenticated("User must be authenticated"))
		return
	}
	userId := claims.Subject

	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid request body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.InvalidArgument("Invalid request body"))
		return
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" || req.OrderID == "" {
		slog.Error("missing required payment data", slog.String(logkey.TraceID, traceId))
		fail(c, apperr.InvalidArgument("Missing required payment data"))
		return
	}

	order, err := h.o.GetOrderByID(c.Request.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			fail(c, apperr.NotFound("Order not found"))
			return
		}
		slog.Error("error fetching order", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.Internal("Failed to verify payment"))
		return
	}
	if order.UserID != userId {
		slog.Error("order ownership mismatch", slog.String(logkey.TraceID, traceId),
			slog.String("OrderID", order.ID), slog.String("UserID", userId))
		fail(c, apperr.PermissionDenied("Order does not belong to user"))
		return
	}

	// A replayed callback against a closed order is a conflict, checked
	// before the signature so a stale replay can never flip a paid order
	// to failed.
	if order.Status != orders.StatusPending {
		fail(c, apperr.FailedPrecondition("Order already "+order.Status))
		return
	}

	if !h.g.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		// Record the forged callback before rejecting it.
		if err := h.o.MarkFailed(c.Request.Context(), order.ID, "Invalid payment signature"); err != nil {
			slog.Error("error marking order failed", slog.String(logkey.TraceID, traceId),
				slog.String("OrderID", order.ID), slog.String(logkey.ERROR, err.Error()))
		}
		slog.Error("invalid payment signature", slog.String(logkey.TraceID, traceId), slog.String("OrderID", order.ID))
		h.publishOrderFailed(order, "Invalid payment signature", traceId)
		fail(c, apperr.InvalidArgument("Invalid payment signature"))
		return
	}

	// Second trust check: never take the client's word for the payment
	// status, confirm against the gateway's record.
	payment, err := h.g.FetchPayment(req.RazorpayPaymentID)
	if err != nil {
		slog.Error("error fetching payment from gateway", slog.String(logkey.TraceID, traceId),
			slog.String("OrderID", order.ID), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.Internal("Failed to verify payment"))
		return
	}
	if payment.Status != gateway.PaymentStatusCaptured && payment.Status != gateway.PaymentStatusAuthorized {
		if err := h.o.MarkFailed(c.Request.Context(), order.ID, "Payment status: "+payment.Status); err != nil {
			slog.Error("error marking order failed", slog.String(logkey.TraceID, traceId),
				slog.String("OrderID", order.ID), slog.String(logkey.ERROR, err.Error()))
		}
		h.publishOrderFailed(order, "Payment status: "+payment.Status, traceId)
		fail(c, apperr.FailedPrecondition("Payment not successful"))
		return
	}

	details := orders.PaymentDetails{
		ID:        payment.ID,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Status:    payment.Status,
		Method:    payment.Method,
		CreatedAt: payment.CreatedAt,
	}
	if err := h.o.MarkPaid(c.Request.Context(), order.ID, req.RazorpayPaymentID, details); err != nil {
		if errors.Is(err, orders.ErrOrderClosed) {
			fail(c, apperr.FailedPrecondition("Order already closed"))
			return
		}
		slog.Error("error marking order paid", slog.String(logkey.TraceID, traceId),
			slog.String("OrderID", order.ID), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.Internal("Failed to verify payment"))
		return
	}

	slog.Info("payment verified", slog.String(logkey.TraceID, traceId),
		slog.String("OrderID", order.ID), slog.String("PaymentID", payment.ID),
		slog.Int64("Amount", payment.Amount), slog.String("UserID", userId))

	h.publishOrderPaid(order, req.RazorpayPaymentID, traceId)

	c.JSON(http.StatusOK, gin.H{
		"orderId":   order.ID,
		"paymentId": req.RazorpayPaymentID,
		"amount":    payment.Amount,
		"currency":  payment.Currency,
		"status":    orders.StatusPaid,
	})
}

// PaymentFailed records a client-reported failure (declined card, dismissal,
// timeout) so the order does not sit pending forever. These failures never
// produce a signature to verify.
func (h *Handler) PaymentFailed(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := callerClaims(c)
	if !ok {
		slog.Error("claims not found", slog.String(logkey.TraceID, traceId))
		fail(c, apperr.Unauthenticated("User must be authenticated"))
		return
	}
	userId := claims.Subject

	var req paymentFailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid request body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.InvalidArgument("Invalid request body"))
		return
	}
	if req.OrderID == "" {
		fail(c, apperr.InvalidArgument("Order ID is required"))
		return
	}

	order, err := h.o.GetOrderByID(c.Request.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			fail(c, apperr.NotFound("Order not found"))
			return
		}
		slog.Error("error fetching order", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.Internal("Failed to record payment failure"))
		return
	}
	if order.UserID != userId {
		fail(c, apperr.PermissionDenied("Order does not belong to user"))
		return
	}

	reason := req.ErrorDescription
	if reason == "" {
		reason = req.ErrorReason
	}
	if reason == "" {
		reason = "Payment failed"
	}

	if err := h.o.MarkFailed(c.Request.Context(), order.ID, reason); err != nil {
		if errors.Is(err, orders.ErrOrderClosed) {
			fail(c, apperr.FailedPrecondition("Order already "+order.Status))
			return
		}
		slog.Error("error marking order failed", slog.String(logkey.TraceID, traceId),
			slog.String("OrderID", order.ID), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.Internal("Failed to record payment failure"))
		return
	}

	slog.Info("payment failure recorded", slog.String(logkey.TraceID, traceId),
		slog.String("OrderID", order.ID), slog.String("Reason", reason), slog.String("UserID", userId))

	h.publishOrderFailed(order, reason, traceId)

	c.JSON(http.StatusOK, gin.H{"message": "Payment failure recorded"})
}

// GetOrder returns the caller's order with timestamps as RFC 3339 strings.
func (h *Handler) GetOrder(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := callerClaims(c)
	if !ok {
		slog.Error("claims not found", slog.String(logkey.TraceID, traceId))
		fail(c, apperr.Unauthenticated("User must be authenticated"))
		return
	}

	orderID := c.Param("id")
	if orderID == "" {
		fail(c, apperr.InvalidArgument("Order ID is required"))
		return
	}

	order, err := h.o.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			fail(c, apperr.NotFound("Order not found"))
			return
		}
		slog.Error("error fetching order", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.Internal("Failed to get order details"))
		return
	}
	if order.UserID != claims.Subject {
		fail(c, apperr.PermissionDenied("Order does not belong to user"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListOrders returns the caller's orders, newest first.
func (h *Handler) ListOrders(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	claims, ok := callerClaims(c)
	if !ok {
		slog.Error("claims not found", slog.String(logkey.TraceID, traceId))
		fail(c, apperr.Unauthenticated("User must be authenticated"))
		return
	}

	list, err := h.o.ListOrdersByUser(c.Request.Context(), claims.Subject)
	if err != nil {
		slog.Error("error listing orders", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.Internal("Failed to list orders"))
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// Lifecycle events are best effort and stay off the request path.
func (h *Handler) publishOrderPaid(order orders.Order, paymentID, traceId string) {
	go func() {
		jsonData, err := json.Marshal(kafka.OrderPaidEvent{
			OrderId:   order.ID,
			UserId:    order.UserID,
			PaymentId: paymentID,
			Amount:    order.Amount,
			Currency:  order.Currency,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			slog.Error("failed to marshal OrderPaidEvent", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			return
		}
		if err := h.k.ProduceMessage(kafka.TopicOrderPaid, []byte(order.ID), jsonData); err != nil {
			slog.Error("failed to produce order-paid event", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		}
	}()
}

func (h *Handler) publishOrderFailed(order orders.Order, reason, traceId string) {
	go func() {
		jsonData, err := json.Marshal(kafka.OrderFailedEvent{
			OrderId:   order.ID,
			UserId:    order.UserID,
			Reason:    reason,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			slog.Error("failed to marshal OrderFailedEvent", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			return
		}
		if err := h.k.ProduceMessage(kafka.TopicOrderFailed, []byte(order.ID), jsonData); err != nil {
			slog.Error("failed to produce order-failed event", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		}
	}()
}
