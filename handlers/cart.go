package handlers

import (
	"log/slog"
	"net/http"

	"order-service/internal/apperr"
	"order-service/internal/cart"
	"order-service/pkg/ctxmanage"
	"order-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

type cartQuoteRequest struct {
	Items []cart.CartItem `json:"items"`
}

// CartQuote derives checkout totals for a client-held cart. Nothing is
// persisted; the client submits the resulting total (in paise) to
// create-order.
func (h *Handler) CartQuote(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	var req cartQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid request body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.InvalidArgument("Invalid request body"))
		return
	}

	totals, err := cart.ComputeTotals(req.Items)
	if err != nil {
		slog.Error("cart validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		fail(c, apperr.InvalidArgument(err.Error()))
		return
	}

	c.JSON(http.StatusOK, totals)
}
