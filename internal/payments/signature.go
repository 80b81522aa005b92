// Package payments verifies payment provider webhooks and applies the credits
// they confirm, retrying through a dead-letter topic when the ledger is unavailable.
package payments

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
)

// SignatureHeader carries the hex HMAC-SHA512 of the raw request body.
const SignatureHeader = "X-Signature"

// ErrSignatureMismatch is returned when the body does not match its signature.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// Sign returns the hex encoded HMAC-SHA512 of body.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha512.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks signature against body in constant time.
func VerifySignature(secret, body []byte, signature string) error {
	if len(secret) == 0 || signature == "" {
		return ErrSignatureMismatch
	}

	got, err := hex.DecodeString(signature)
	if err != nil {
		return ErrSignatureMismatch
	}

	mac := hmac.New(sha512.New, secret)
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrSignatureMismatch
	}
	return nil
}
