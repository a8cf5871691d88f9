package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP returns a 4-digit one-time passcode in [1000, 9999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

// OTPMatches reports whether the candidate equals the stored challenge.
// A nil stored challenge never matches.
func OTPMatches(candidate string, stored *string) bool {
	return stored != nil && candidate == *stored
}
