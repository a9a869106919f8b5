package utils

import (
	"crypto/rand"
	"math/big"
)

const randomChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns an uppercase alphanumeric string, used as the
// unique suffix of invoice numbers.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomChars))))
		if err != nil {
			panic("failed to generate random string")
		}
		b[i] = randomChars[idx.Int64()]
	}
	return string(b)
}
