package ai

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyHMAC(t *testing.T) {
	payload := []byte(`{"texts":["Hello"]}`)

	assert.True(t, VerifyHMAC("s3cret", payload, sign("s3cret", payload)))
	assert.False(t, VerifyHMAC("s3cret", payload, sign("other", payload)))
	assert.False(t, VerifyHMAC("s3cret", []byte("tampered"), sign("s3cret", payload)))
	assert.False(t, VerifyHMAC("", payload, sign("", payload)))
	assert.False(t, VerifyHMAC("s3cret", payload, ""))
}
