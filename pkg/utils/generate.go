package utils

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== TOKEN ====================

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== OTP ====================

func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := crand.Int(crand.Reader, big.NewInt(10))
		if err != nil {
			n = big.NewInt(rand.Int64N(10))
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}

	return b.String()
}

// ==================== CODES ====================

// GenerateBookingCode format: BK-YYYYMMDD-HHMMSS-NNNN
func GenerateBookingCode(now time.Time) string {
	return prefixedCode("BK", now)
}

// GenerateEscrowCode format: ESC-YYYYMMDD-HHMMSS-NNNN
func GenerateEscrowCode(now time.Time) string {
	return prefixedCode("ESC", now)
}

// GenerateWalletCode format: WT-YYYYMMDD-HHMMSS-NNNN
func GenerateWalletCode(now time.Time) string {
	return prefixedCode("WT", now)
}

// GenerateOrderCode returns the numeric order code the payment gateway
// expects. It stays below 2^53 so it survives JSON number round-trips.
func GenerateOrderCode(now time.Time) int64 {
	return now.UnixMilli()*1000 + rand.Int64N(1000)
}

func prefixedCode(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%04d",
		prefix,
		now.Format("20060102"),
		now.Format("150405"),
		rand.IntN(10000),
	)
}
