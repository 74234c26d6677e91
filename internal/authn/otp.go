package authn

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeMax = 10000

// GenerateCode returns a 4-digit authentication number, zero-padded
// (e.g. "0007"), uniformly distributed over [0000, 9999]. Collisions are
// acceptable: each key overwrite is idempotent-safe.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
