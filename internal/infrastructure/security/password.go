package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789!@#%^&*"

// GeneratePassword returns a random password of length n drawn from a
// shoulder-surf-friendly alphabet (no 0/O, 1/l/I). Used when no admin
// password is supplied, so no credential ever lives in source or config
// defaults.
func GeneratePassword(n int) (string, error) {
	if n < 12 {
		n = 12
	}

	buf := make([]byte, n)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		buf[i] = passwordAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
