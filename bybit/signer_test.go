package bybit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignLegacy(t *testing.T) {
	secret := "test-secret"
	params := map[string]string{
		"symbol":        "BTCUSDT",
		"side":          "Buy",
		"order_type":    "Market",
		"qty":           "0.001",
		"api_key":       "test-key",
		"timestamp":     "1700000000000",
		"time_in_force": "ImmediateOrCancel",
	}

	t.Run("deterministic", func(t *testing.T) {
		first := SignLegacy(secret, params)
		second := SignLegacy(secret, params)
		assert.Equal(t, first, second)
		assert.Len(t, first, 64) // hex-encoded SHA-256
	})

	t.Run("tamper evidence", func(t *testing.T) {
		base := SignLegacy(secret, params)

		for key := range params {
			tampered := make(map[string]string, len(params))
			for k, v := range params {
				tampered[k] = v
			}
			tampered[key] = params[key] + "x"
			assert.NotEqual(t, base, SignLegacy(secret, tampered),
				"changing %q must change the signature", key)
		}
	})

	t.Run("key order independent", func(t *testing.T) {
		// Maps iterate in random order; the sorted canonical form must make
		// the signature stable across runs regardless.
		signatures := make(map[string]bool)
		for i := 0; i < 10; i++ {
			signatures[SignLegacy(secret, params)] = true
		}
		assert.Len(t, signatures, 1)
	})

	t.Run("different secrets differ", func(t *testing.T) {
		assert.NotEqual(t, SignLegacy("secret-a", params), SignLegacy("secret-b", params))
	})
}

func TestSignV5(t *testing.T) {
	const (
		secret     = "test-secret"
		timestamp  = "1700000000000"
		apiKey     = "test-key"
		recvWindow = "15000"
	)

	t.Run("deterministic", func(t *testing.T) {
		body := `{"category":"linear","symbol":"BTCUSDT"}`
		first := SignV5(secret, timestamp, apiKey, recvWindow, body)
		second := SignV5(secret, timestamp, apiKey, recvWindow, body)
		assert.Equal(t, first, second)
		assert.Len(t, first, 64)
	})

	t.Run("body sensitivity", func(t *testing.T) {
		body1 := `{"category":"linear","symbol":"BTCUSDT","qty":"0.001"}`
		body2 := `{"category":"linear","symbol":"BTCUSDT","qty":"0.002"}`
		assert.NotEqual(t,
			SignV5(secret, timestamp, apiKey, recvWindow, body1),
			SignV5(secret, timestamp, apiKey, recvWindow, body2))
	})

	t.Run("metadata sensitivity", func(t *testing.T) {
		body := `{"symbol":"BTCUSDT"}`
		base := SignV5(secret, timestamp, apiKey, recvWindow, body)
		assert.NotEqual(t, base, SignV5(secret, "1700000000001", apiKey, recvWindow, body))
		assert.NotEqual(t, base, SignV5(secret, timestamp, "other-key", recvWindow, body))
		assert.NotEqual(t, base, SignV5(secret, timestamp, apiKey, "5000", body))
	})
}
