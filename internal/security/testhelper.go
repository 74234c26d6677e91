package security

import "time"

// NewTestTokenProvider returns a TokenProvider with a fixed test secret and
// the given ttl. Test-only helper; never use the secret outside tests.
func NewTestTokenProvider(ttl time.Duration) (*TokenProvider, error) {
	return NewTokenProvider([]byte("0123456789abcdef0123456789abcdef"), ttl)
}
