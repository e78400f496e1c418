package idrx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	domainerrors "idrx-gate.backend/internal/domain/errors"
)

// emptyBody is the canonical representation of a bodyless request. Every
// call site signs through Sign so the sentinel cannot drift between them.
var emptyBody = []byte("{}")

// Sign computes the request signature the provider verifies:
// HMAC-SHA256 over "METHOD:url:base64(body):timestamp", hex encoded.
//
// path must be the absolute URL the request is sent to, body must be the
// exact bytes covered by the signature, and timestamp must be the same
// string placed in the timestamp header. Pure function; the caller owns the
// clock.
func Sign(method, path string, body []byte, timestamp, secret string) (string, error) {
	if secret == "" {
		return "", domainerrors.ErrInvalidInput
	}

	canonical := body
	if len(canonical) == 0 {
		canonical = emptyBody
	}

	payload := method + ":" + path + ":" + base64.StdEncoding.EncodeToString(canonical) + ":" + timestamp

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil)), nil
}
