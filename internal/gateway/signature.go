package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SignPayment produces the hex HMAC-SHA256 the gateway computes over
// "{orderID}|{paymentID}". Exported so test doubles can mint valid
// signatures without duplicating the scheme.
func SignPayment(razorpayOrderID, razorpayPaymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", razorpayOrderID, razorpayPaymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

func verifySignature(razorpayOrderID, razorpayPaymentID, signature, secret string) bool {
	expected := SignPayment(razorpayOrderID, razorpayPaymentID, secret)
	// hmac.Equal keeps the comparison constant time.
	return hmac.Equal([]byte(expected), []byte(signature))
}
