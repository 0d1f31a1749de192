package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber builds a human-readable order number like AION-20260831-1A2B3C
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("AION-%s-%s", time.Now().Format("20060102"), suffix)
}

// GenerateCouponCode builds a coupon code with the given prefix
func GenerateCouponCode(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	if prefix == "" {
		prefix = "AION"
	}
	return fmt.Sprintf("%s-%s", strings.ToUpper(prefix), suffix)
}
