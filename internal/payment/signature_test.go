package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureMatch(t *testing.T) {
	sig := sign("topsecret", "order_abc", "pay_def")
	assert.True(t, VerifySignature("topsecret", "order_abc", "pay_def", sig))
}

func TestVerifySignatureTampered(t *testing.T) {
	sig := sign("topsecret", "order_abc", "pay_def")
	assert.False(t, VerifySignature("topsecret", "order_abc", "pay_OTHER", sig))
	assert.False(t, VerifySignature("wrongsecret", "order_abc", "pay_def", sig))
}

func TestVerifySignatureNotHex(t *testing.T) {
	assert.False(t, VerifySignature("topsecret", "order_abc", "pay_def", "zzzz-not-hex"))
}

func TestVerifySignatureEmpty(t *testing.T) {
	assert.False(t, VerifySignature("topsecret", "order_abc", "pay_def", ""))
}
