package handlers

import (
	"os"

	"order-service/internal/auth"
	"order-service/internal/gateway"
	"order-service/internal/orders"
	"order-service/internal/stores/kafka"
	"order-service/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	o        orders.Store
	g        gateway.Gateway
	k        kafka.Producer
	validate *validator.Validate
}

func NewHandler(o orders.Store, g gateway.Gateway, k kafka.Producer) *Handler {
	return &Handler{
		o:        o,
		g:        g,
		k:        k,
		validate: validator.New(),
	}
}

func API(endpointPrefix string, keys *auth.Keys, o orders.Store, g gateway.Gateway, k kafka.Producer) *gin.Engine {
	r := gin.New()
	mode := os.Getenv("GIN_MODE")
	if mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	m, err := middleware.NewMid(keys)
	if err != nil {
		panic(err)
	}

	h := NewHandler(o, g, k)
	r.Use(middleware.Logger(), gin.Recovery())

	r.GET("/ping", HealthCheck)

	// The cart lives on the client; quoting totals needs no account.
	r.POST("/cart/quote", h.CartQuote)

	v1 := r.Group(endpointPrefix)
	{
		v1.Use(m.Authentication())
		v1.POST("/create", m.Authorize(h.CreateOrder, auth.RoleUser))
		v1.POST("/verify-payment", m.Authorize(h.VerifyPayment, auth.RoleUser))
		v1.POST("/payment-failed", m.Authorize(h.PaymentFailed, auth.RoleUser))
		v1.GET("/view/:id", m.Authorize(h.GetOrder, auth.RoleUser))
		v1.GET("/list", m.Authorize(h.ListOrders, auth.RoleUser))
	}
	return r
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}
