package handlers

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"order-service/internal/auth"
	"order-service/internal/gateway"
	"order-service/internal/orders"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestMain(m *testing.M) {
	os.Setenv("GIN_MODE", gin.ReleaseMode)
	os.Exit(m.Run())
}

type fakeGateway struct {
	secret    string
	payments  map[string]*gateway.Payment
	createErr error
	created   int
}

func (f *fakeGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*gateway.GatewayOrder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	return &gateway.GatewayOrder{
		ID:       fmt.Sprintf("order_fake%d", f.created),
		Amount:   amount,
		Currency: currency,
	}, nil
}

func (f *fakeGateway) FetchPayment(paymentID string) (*gateway.Payment, error) {
	p, ok := f.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("payment %s not found", paymentID)
	}
	return p, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return gateway.SignPayment(orderID, paymentID, f.secret) == signature
}

func (f *fakeGateway) KeyID() string { return "rzp_test_key" }

type producedRecord struct {
	topic string
	key   string
	value []byte
}

type fakeProducer struct {
	mu      sync.Mutex
	records []producedRecord
}

func (f *fakeProducer) ProduceMessage(topic string, key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, producedRecord{topic: topic, key: string(key), value: value})
	return nil
}

// Events are produced off the request path; poll briefly.
func (f *fakeProducer) waitForTopic(topic string) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f.mu.Lock()
		for _, r := range f.records {
			if r.topic == topic {
				f.mu.Unlock()
				return true
			}
		}
		f.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

type testEnv struct {
	engine   *gin.Engine
	store    *orders.MemStore
	gw       *fakeGateway
	producer *fakeProducer
	signKey  *rsa.PrivateKey
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	keys, err := auth.NewKeys(pubPEM)
	if err != nil {
		t.Fatalf("load auth keys: %v", err)
	}

	store := orders.NewMemStore()
	gw := &fakeGateway{secret: "test_secret", payments: map[string]*gateway.Payment{}}
	producer := &fakeProducer{}
	engine := API("/orders", keys, store, gw, producer)
	return &testEnv{engine: engine, store: store, gw: gw, producer: producer, signKey: priv}
}

func (e *testEnv) token(t *testing.T, uid string) string {
	t.Helper()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: []string{auth.RoleUser},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(e.signKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("no structured error in body: %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

func validCreatePayload() map[string]any {
	return map[string]any{
		"amount":   599 * 100,
		"currency": "INR",
		"orderItems": []map[string]any{
			{"id": "p1", "name": "Thekua", "quantity": 2, "price": 299, "category": "prasad"},
		},
		"deliveryAddress": map[string]any{
			"fullName":     "Sita Devi",
			"addressLine1": "12 Ganga Path",
			"city":         "Patna",
			"state":        "Bihar",
			"pincode":      "800001",
		},
		"phoneNumber": "+911234567890",
	}
}

// createOrder runs a full create-order call and returns the new order id and
// gateway order id.
func (e *testEnv) createOrder(t *testing.T, uid string) (string, string) {
	t.Helper()
	w, body := e.do(t, http.MethodPost, "/orders/create", e.token(t, uid), validCreatePayload())
	if w.Code != http.StatusOK {
		t.Fatalf("create-order status = %d, body %v", w.Code, body)
	}
	return body["orderId"].(string), body["gatewayOrderId"].(string)
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)

	w, body := env.do(t, http.MethodPost, "/orders/create", env.token(t, "u1"), validCreatePayload())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if body["amount"].(float64) != 59900 {
		t.Errorf("amount = %v, want 59900", body["amount"])
	}
	if body["currency"] != "INR" {
		t.Errorf("currency = %v, want INR", body["currency"])
	}
	if body["gatewayKey"] != "rzp_test_key" {
		t.Errorf("gatewayKey = %v", body["gatewayKey"])
	}
	if body["gatewayOrderId"] == "" || body["orderId"] == "" {
		t.Fatalf("missing ids in response: %v", body)
	}

	stored, err := env.store.GetOrderByID(context.Background(), body["orderId"].(string))
	if err != nil {
		t.Fatalf("stored order: %v", err)
	}
	if stored.Status != orders.StatusPending {
		t.Errorf("stored status = %q, want pending", stored.Status)
	}
	if stored.RazorpayOrderID != body["gatewayOrderId"] {
		t.Errorf("stored gateway ref = %q, want %v", stored.RazorpayOrderID, body["gatewayOrderId"])
	}
	if stored.UserID != "u1" {
		t.Errorf("stored user = %q, want u1", stored.UserID)
	}
}

func TestCreateOrderAmountBounds(t *testing.T) {
	env := newTestEnv(t)

	for _, amount := range []int64{1, 99, 5000001, -500} {
		payload := validCreatePayload()
		payload["amount"] = amount
		w, body := env.do(t, http.MethodPost, "/orders/create", env.token(t, "u1"), payload)
		if w.Code != http.StatusBadRequest {
			t.Errorf("amount %d: status = %d, want 400", amount, w.Code)
			continue
		}
		if code := errorCode(t, body); code != "INVALID_ARGUMENT" {
			t.Errorf("amount %d: code = %s, want INVALID_ARGUMENT", amount, code)
		}
	}

	// Nothing may be persisted for rejected amounts.
	list, err := env.store.ListOrdersByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("%d orders persisted for rejected requests", len(list))
	}
}

func TestCreateOrderMissingFields(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "u1")

	for _, drop := range []string{"amount", "orderItems", "deliveryAddress", "phoneNumber"} {
		payload := validCreatePayload()
		delete(payload, drop)
		w, body := env.do(t, http.MethodPost, "/orders/create", tok, payload)
		if w.Code != http.StatusBadRequest {
			t.Errorf("missing %s: status = %d, want 400", drop, w.Code)
			continue
		}
		if code := errorCode(t, body); code != "INVALID_ARGUMENT" {
			t.Errorf("missing %s: code = %s", drop, code)
		}
	}
}

func TestCreateOrderUnauthenticated(t *testing.T) {
	env := newTestEnv(t)
	w, body := env.do(t, http.MethodPost, "/orders/create", "", validCreatePayload())
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCode(t, body); code != "UNAUTHENTICATED" {
		t.Errorf("code = %s, want UNAUTHENTICATED", code)
	}
}

func TestCreateOrderGatewayFailureLeavesPending(t *testing.T) {
	env := newTestEnv(t)
	env.gw.createErr = fmt.Errorf("gateway unreachable")

	w, body := env.do(t, http.MethodPost, "/orders/create", env.token(t, "u1"), validCreatePayload())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if code := errorCode(t, body); code != "INTERNAL" {
		t.Errorf("code = %s, want INTERNAL", code)
	}

	// The local order survives in pending with no gateway reference; the
	// client may retry with a fresh create-order.
	list, err := env.store.ListOrdersByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d orders, want 1", len(list))
	}
	if list[0].Status != orders.StatusPending || list[0].RazorpayOrderID != "" {
		t.Errorf("order = %q/%q, want pending with empty gateway ref", list[0].Status, list[0].RazorpayOrderID)
	}
}

func TestVerifyPaymentSuccess(t *testing.T) {
	env := newTestEnv(t)
	orderID, gatewayOrderID := env.createOrder(t, "u1")

	env.gw.payments["pay_ok"] = &gateway.Payment{
		ID: "pay_ok", Amount: 59900, Currency: "INR",
		Status: gateway.PaymentStatusCaptured, Method: "upi", CreatedAt: 1700000000,
	}
	sig := gateway.SignPayment(gatewayOrderID, "pay_ok", env.gw.secret)

	w, body := env.do(t, http.MethodPost, "/orders/verify-payment", env.token(t, "u1"), map[string]any{
		"razorpayOrderId":   gatewayOrderID,
		"razorpayPaymentId": "pay_ok",
		"razorpaySignature": sig,
		"orderId":           orderID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if body["status"] != orders.StatusPaid || body["paymentId"] != "pay_ok" {
		t.Errorf("response = %v", body)
	}

	stored, _ := env.store.GetOrderByID(context.Background(), orderID)
	if stored.Status != orders.StatusPaid {
		t.Errorf("stored status = %q, want paid", stored.Status)
	}
	if stored.PaymentDetails == nil || stored.PaymentDetails.Method != "upi" || stored.PaymentDetails.Status != "captured" {
		t.Errorf("payment snapshot = %+v", stored.PaymentDetails)
	}
	if stored.PaidAt == nil {
		t.Errorf("paidAt not stamped")
	}

	if !env.producer.waitForTopic("order-service.order-paid") {
		t.Errorf("order-paid event not produced")
	}
}

func TestVerifyPaymentTamperedSignature(t *testing.T) {
	env := newTestEnv(t)
	orderID, gatewayOrderID := env.createOrder(t, "u1")

	sig := gateway.SignPayment(gatewayOrderID, "pay_x", env.gw.secret)
	w, body := env.do(t, http.MethodPost, "/orders/verify-payment", env.token(t, "u1"), map[string]any{
		"razorpayOrderId":   gatewayOrderID,
		"razorpayPaymentId": "pay_x",
		"razorpaySignature": sig + "00",
		"orderId":           orderID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errorCode(t, body); code != "INVALID_ARGUMENT" {
		t.Errorf("code = %s, want INVALID_ARGUMENT", code)
	}

	// The forgery is durably recorded, not merely reported.
	stored, _ := env.store.GetOrderByID(context.Background(), orderID)
	if stored.Status != orders.StatusFailed {
		t.Errorf("stored status = %q, want failed", stored.Status)
	}
	if stored.FailureReason != "Invalid payment signature" {
		t.Errorf("failure reason = %q", stored.FailureReason)
	}
}

func TestVerifyPaymentGatewayReportsRefunded(t *testing.T) {
	env := newTestEnv(t)
	orderID, gatewayOrderID := env.createOrder(t, "u1")

	env.gw.payments["pay_ref"] = &gateway.Payment{ID: "pay_ref", Amount: 59900, Currency: "INR", Status: "refunded"}
	sig := gateway.SignPayment(gatewayOrderID, "pay_ref", env.gw.secret)

	w, body := env.do(t, http.MethodPost, "/orders/verify-payment", env.token(t, "u1"), map[string]any{
		"razorpayOrderId":   gatewayOrderID,
		"razorpayPaymentId": "pay_ref",
		"razorpaySignature": sig,
		"orderId":           orderID,
	})
	if w.Code != http.StatusPreconditionFailed {
		t.Fatalf("status = %d, want 412", w.Code)
	}
	if code := errorCode(t, body); code != "FAILED_PRECONDITION" {
		t.Errorf("code = %s, want FAILED_PRECONDITION", code)
	}

	stored, _ := env.store.GetOrderByID(context.Background(), orderID)
	if stored.Status != orders.StatusFailed || stored.FailureReason != "Payment status: refunded" {
		t.Errorf("order = %q/%q", stored.Status, stored.FailureReason)
	}
}

func TestVerifyPaymentTerminalStateIsStable(t *testing.T) {
	env := newTestEnv(t)
	orderID, gatewayOrderID := env.createOrder(t, "u1")

	env.gw.payments["pay_ok"] = &gateway.Payment{
		ID: "pay_ok", Amount: 59900, Currency: "INR",
		Status: gateway.PaymentStatusCaptured, Method: "card", CreatedAt: 1700000000,
	}
	sig := gateway.SignPayment(gatewayOrderID, "pay_ok", env.gw.secret)
	payload := map[string]any{
		"razorpayOrderId":   gatewayOrderID,
		"razorpayPaymentId": "pay_ok",
		"razorpaySignature": sig,
		"orderId":           orderID,
	}
	if w, body := env.do(t, http.MethodPost, "/orders/verify-payment", env.token(t, "u1"), payload); w.Code != http.StatusOK {
		t.Fatalf("first verify: status = %d, body %v", w.Code, body)
	}
	first, _ := env.store.GetOrderByID(context.Background(), orderID)

	// Replaying the same valid callback must not alter the stored snapshot
	// or the paid timestamp.
	w, body := env.do(t, http.MethodPost, "/orders/verify-payment", env.token(t, "u1"), payload)
	if w.Code != http.StatusPreconditionFailed {
		t.Fatalf("replay: status = %d, want 412, body %v", w.Code, body)
	}

	// Neither may a bad-signature replay flip the paid order to failed.
	payload["razorpaySignature"] = "deadbeef"
	if w, _ := env.do(t, http.MethodPost, "/orders/verify-payment", env.token(t, "u1"), payload); w.Code != http.StatusPreconditionFailed {
		t.Fatalf("bad-signature replay: status = %d, want 412", w.Code)
	}

	second, _ := env.store.GetOrderByID(context.Background(), orderID)
	if second.Status != orders.StatusPaid {
		t.Fatalf("status changed to %q after replays", second.Status)
	}
	if !second.PaidAt.Equal(*first.PaidAt) || *second.PaymentDetails != *first.PaymentDetails {
		t.Errorf("payment snapshot altered by replay")
	}
}

func TestVerifyPaymentValidation(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "u1")

	// Missing fields
	w, body := env.do(t, http.MethodPost, "/orders/verify-payment", tok, map[string]any{"orderId": "x"})
	if w.Code != http.StatusBadRequest || errorCode(t, body) != "INVALID_ARGUMENT" {
		t.Errorf("missing fields: status = %d, body %v", w.Code, body)
	}

	// Unknown order
	w, body = env.do(t, http.MethodPost, "/orders/verify-payment", tok, map[string]any{
		"razorpayOrderId":   "order_x",
		"razorpayPaymentId": "pay_x",
		"razorpaySignature": "sig",
		"orderId":           "does-not-exist",
	})
	if w.Code != http.StatusNotFound || errorCode(t, body) != "NOT_FOUND" {
		t.Errorf("unknown order: status = %d, body %v", w.Code, body)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	orderID, gatewayOrderID := env.createOrder(t, "userA")
	tokB := env.token(t, "userB")

	// Even a correctly signed verify request fails on a foreign order.
	env.gw.payments["pay_ok"] = &gateway.Payment{ID: "pay_ok", Status: gateway.PaymentStatusCaptured}
	sig := gateway.SignPayment(gatewayOrderID, "pay_ok", env.gw.secret)
	w, body := env.do(t, http.MethodPost, "/orders/verify-payment", tokB, map[string]any{
		"razorpayOrderId":   gatewayOrderID,
		"razorpayPaymentId": "pay_ok",
		"razorpaySignature": sig,
		"orderId":           orderID,
	})
	if w.Code != http.StatusForbidden || errorCode(t, body) != "PERMISSION_DENIED" {
		t.Errorf("verify: status = %d, body %v", w.Code, body)
	}

	w, body = env.do(t, http.MethodPost, "/orders/payment-failed", tokB, map[string]any{"orderId": orderID})
	if w.Code != http.StatusForbidden || errorCode(t, body) != "PERMISSION_DENIED" {
		t.Errorf("payment-failed: status = %d, body %v", w.Code, body)
	}

	w, body = env.do(t, http.MethodGet, "/orders/view/"+orderID, tokB, nil)
	if w.Code != http.StatusForbidden || errorCode(t, body) != "PERMISSION_DENIED" {
		t.Errorf("view: status = %d, body %v", w.Code, body)
	}

	// The order itself is untouched by the denied attempts.
	stored, _ := env.store.GetOrderByID(context.Background(), orderID)
	if stored.Status != orders.StatusPending {
		t.Errorf("status = %q, want pending", stored.Status)
	}
}

func TestPaymentFailedRecordsReason(t *testing.T) {
	env := newTestEnv(t)
	orderID, _ := env.createOrder(t, "u1")

	w, body := env.do(t, http.MethodPost, "/orders/payment-failed", env.token(t, "u1"), map[string]any{
		"orderId":          orderID,
		"errorDescription": "User cancelled",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if body["message"] != "Payment failure recorded" {
		t.Errorf("message = %v", body["message"])
	}

	stored, _ := env.store.GetOrderByID(context.Background(), orderID)
	if stored.Status != orders.StatusFailed || stored.FailureReason != "User cancelled" {
		t.Errorf("order = %q/%q, want failed/User cancelled", stored.Status, stored.FailureReason)
	}
	if !env.producer.waitForTopic("order-service.order-failed") {
		t.Errorf("order-failed event not produced")
	}
}

func TestPaymentFailedReasonFallbacks(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "u1")

	orderID, _ := env.createOrder(t, "u1")
	if w, _ := env.do(t, http.MethodPost, "/orders/payment-failed", tok, map[string]any{
		"orderId":     orderID,
		"errorReason": "payment_cancelled",
	}); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	stored, _ := env.store.GetOrderByID(context.Background(), orderID)
	if stored.FailureReason != "payment_cancelled" {
		t.Errorf("reason = %q, want errorReason fallback", stored.FailureReason)
	}

	orderID2, _ := env.createOrder(t, "u1")
	if w, _ := env.do(t, http.MethodPost, "/orders/payment-failed", tok, map[string]any{
		"orderId": orderID2,
	}); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	stored2, _ := env.store.GetOrderByID(context.Background(), orderID2)
	if stored2.FailureReason != "Payment failed" {
		t.Errorf("reason = %q, want generic default", stored2.FailureReason)
	}
}

func TestGetOrderProjection(t *testing.T) {
	env := newTestEnv(t)
	orderID, gatewayOrderID := env.createOrder(t, "u1")

	w, body := env.do(t, http.MethodGet, "/orders/view/"+orderID, env.token(t, "u1"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	order, ok := body["order"].(map[string]any)
	if !ok {
		t.Fatalf("no order in body: %v", body)
	}
	if order["id"] != orderID || order["status"] != orders.StatusPending {
		t.Errorf("order projection = %v", order)
	}
	if order["razorpayOrderId"] != gatewayOrderID {
		t.Errorf("gateway ref = %v, want %s", order["razorpayOrderId"], gatewayOrderID)
	}
	createdAt, _ := order["createdAt"].(string)
	if _, err := time.Parse(time.RFC3339, createdAt); err != nil {
		t.Errorf("createdAt %q is not RFC 3339: %v", createdAt, err)
	}
	if _, present := order["paidAt"]; present {
		t.Errorf("paidAt present on a pending order")
	}
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)
	env.createOrder(t, "u1")
	env.createOrder(t, "u1")
	env.createOrder(t, "u2")

	w, body := env.do(t, http.MethodGet, "/orders/list", env.token(t, "u1"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	list, ok := body["orders"].([]any)
	if !ok {
		t.Fatalf("no orders list in body: %v", body)
	}
	if len(list) != 2 {
		t.Errorf("got %d orders, want 2", len(list))
	}
}

func TestCartQuoteEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w, body := env.do(t, http.MethodPost, "/cart/quote", "", map[string]any{
		"items": []map[string]any{
			{"id": "p1", "name": "Thekua", "price": 299, "originalPrice": 349, "quantity": 2, "stock": 10},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if body["subtotal"].(float64) != 598 {
		t.Errorf("subtotal = %v, want 598", body["subtotal"])
	}
	if body["deliveryCharges"].(float64) != 0 {
		t.Errorf("deliveryCharges = %v, want 0", body["deliveryCharges"])
	}
	if body["savings"].(float64) != 100 {
		t.Errorf("savings = %v, want 100", body["savings"])
	}

	w, body = env.do(t, http.MethodPost, "/cart/quote", "", map[string]any{
		"items": []map[string]any{
			{"id": "p1", "name": "Thekua", "price": 299, "quantity": 5, "stock": 2},
		},
	})
	if w.Code != http.StatusBadRequest || errorCode(t, body) != "INVALID_ARGUMENT" {
		t.Errorf("overstock quote: status = %d, body %v", w.Code, body)
	}
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)
	w, body := env.do(t, http.MethodGet, "/ping", "", nil)
	if w.Code != http.StatusOK || body["message"] != "pong" {
		t.Errorf("ping: status = %d, body %v", w.Code, body)
	}
}
