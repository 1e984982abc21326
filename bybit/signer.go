package bybit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// SignLegacy produces the v2-generation request signature: parameters
// (including the client-supplied millisecond timestamp) are sorted
// lexicographically by key, joined as key=value pairs with '&', and signed
// with HMAC-SHA256 over the secret. The result is appended to the request as
// the "sign" parameter.
func SignLegacy(secret string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}

	return hmacHex(secret, sb.String())
}

// SignV5 produces the v5-generation request signature over the concatenation
// timestamp + apiKey + recvWindow + payload, where payload is the JSON body
// for POST requests or the canonical query string for GET requests. The
// signature travels in the X-BAPI-SIGN header alongside the timestamp and
// receive window, not inside the payload.
func SignV5(secret, timestamp, apiKey, recvWindow, payload string) string {
	return hmacHex(secret, timestamp+apiKey+recvWindow+payload)
}

func hmacHex(secret, message string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}
