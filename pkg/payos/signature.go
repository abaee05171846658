package payos

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Sign returns the hex HMAC-SHA256 of data keyed with the checksum key.
func Sign(checksumKey, data string) string {
	mac := hmac.New(sha256.New, []byte(checksumKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// checkoutSignatureData is the fixed field order the gateway signs for
// payment-link creation.
func checkoutSignatureData(req CheckoutRequest) string {
	return fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		req.Amount, req.CancelURL, req.Description, req.OrderCode, req.ReturnURL)
}

// sortedQuery renders a JSON object as key=value pairs joined by '&' with
// keys in ascending order. Nulls become empty strings and numbers keep their
// literal text.
func sortedQuery(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return "", fmt.Errorf("decode webhook data: %w", err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+stringify(fields[k]))
	}
	return strings.Join(parts, "&"), nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if val == "null" || val == "undefined" {
			return ""
		}
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func validSignature(expected, got string) bool {
	return hmac.Equal([]byte(strings.ToLower(expected)), []byte(strings.ToLower(got)))
}
