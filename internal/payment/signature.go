package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature reports whether suppliedSignature is the hex-encoded
// HMAC-SHA256 of "<gatewayOrderID>|<gatewayPaymentID>" keyed by secret.
// The comparison is constant-time.
func VerifySignature(secret, gatewayOrderID, gatewayPaymentID, suppliedSignature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := mac.Sum(nil)

	supplied, err := hex.DecodeString(suppliedSignature)
	if err != nil {
		return false
	}
	return hmac.Equal(supplied, expected)
}
