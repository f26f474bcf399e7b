package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultVerificationCodeLength is the number of digits in a verification code.
const DefaultVerificationCodeLength = 6

var ten = big.NewInt(10)

// GenerateVerificationCode produces a numeric code of exactly length digits.
// Each digit is drawn independently from crypto/rand; if the secure source is
// unavailable the error must be treated as fatal by the caller, never worked
// around with a weaker source.
func GenerateVerificationCode(length int) (string, error) {
	if length <= 0 {
		length = DefaultVerificationCodeLength
	}
	buf := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("secure random source unavailable: %w", err)
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
