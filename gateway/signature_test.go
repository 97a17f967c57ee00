package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpectedSignature(t *testing.T) {
	secret := "shhh"
	got := ExpectedSignature("order_1", "pay_1", secret)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("order_1|pay_1"))
	want := hex.EncodeToString(mac.Sum(nil))

	require.Equal(t, want, got)
	require.Len(t, got, 64) // sha256 hex
}

func TestExpectedSignature_InputSensitivity(t *testing.T) {
	secret := "shhh"
	base := ExpectedSignature("order_1", "pay_1", secret)

	require.NotEqual(t, base, ExpectedSignature("order_2", "pay_1", secret))
	require.NotEqual(t, base, ExpectedSignature("order_1", "pay_2", secret))
	require.NotEqual(t, base, ExpectedSignature("order_1", "pay_1", "other"))
}

func TestVerifySignature(t *testing.T) {
	secret := "shhh"
	sig := ExpectedSignature("order_1", "pay_1", secret)

	require.True(t, VerifySignature("order_1", "pay_1", sig, secret))
	require.False(t, VerifySignature("order_1", "pay_1", "tampered", secret))
	require.False(t, VerifySignature("order_1", "pay_1", "", secret))
	require.False(t, VerifySignature("order_2", "pay_1", sig, secret))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "whsec"
	body := []byte(`{"event":"payment.captured"}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	require.True(t, VerifyWebhookSignature(body, sig, secret))
	require.False(t, VerifyWebhookSignature([]byte(`{}`), sig, secret))
	require.False(t, VerifyWebhookSignature(body, sig, "wrong"))
}
