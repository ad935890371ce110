package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateTrackingID produces a human-readable tracking number,
// e.g. "TRK-20250828-048213".
func GenerateTrackingID() string {
	datePart := time.Now().Format("20060102")
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("TRK-%s-%06d", datePart, randomNum.Int64())
}
