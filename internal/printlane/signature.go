package printlane

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signature computes the request authentication signature: hex-encoded
// HMAC-SHA256 over the concatenation of shop id and order number (no
// delimiter), keyed by the API secret. The receiving API recomputes and
// compares, proving the request comes from the legitimate store for that
// specific order.
//
// Deterministic and total: blank inputs produce a valid (if meaningless)
// signature rather than an error, so payloads stay constructible without
// credentials.
func Signature(shopID, orderNumber, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(shopID + orderNumber))
	return hex.EncodeToString(mac.Sum(nil))
}
