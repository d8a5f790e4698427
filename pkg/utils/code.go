package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// GenerateNumericCode returns a random code of length digits (leading zeros
// allowed), using crypto/rand.
func GenerateNumericCode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
