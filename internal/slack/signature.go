package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// MaxSignatureAge bounds the accepted clock skew for signed requests.
// Older timestamps are rejected to blunt replay of captured payloads.
const MaxSignatureAge = 5 * time.Minute

// ComputeSignature returns the v0 request signature for the given signing
// secret, request timestamp, and raw body.
func ComputeSignature(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a request's X-Slack-Signature against the signing
// secret, rejecting stale timestamps. now is the verification time.
func VerifySignature(secret, timestamp, signature string, body []byte, now time.Time) bool {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	age := now.Sub(time.Unix(ts, 0))
	if age < -MaxSignatureAge || age > MaxSignatureAge {
		return false
	}

	expected := ComputeSignature(secret, timestamp, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
