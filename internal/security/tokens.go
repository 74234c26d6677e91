package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"account-service/internal/apperr"
)

// MinSecretLen is the minimum length of the HS256 signing secret in bytes.
const MinSecretLen = 32

// Claims holds the JWT claim set for an issued token: sub, iss, exp plus the
// role names of the subject.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// TokenInfo is the verified content of a token.
type TokenInfo struct {
	Subject   string
	Issuer    string
	Roles     []string
	ExpiresAt time.Time
}

// TokenProvider issues and verifies HS256-signed JWTs. The symmetric secret
// is read-only after construction; Verify is purely computational.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenProvider returns a TokenProvider signing with the given symmetric
// secret. secret must be at least MinSecretLen bytes for HS256. ttl is the
// validity window of issued tokens (10 minutes in production config); zero
// selects that default.
func NewTokenProvider(secret []byte, ttl time.Duration) (*TokenProvider, error) {
	if len(secret) < MinSecretLen {
		return nil, apperr.Newf(apperr.CodeSystemError, "jwt secret must be at least %d bytes", MinSecretLen)
	}
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &TokenProvider{secret: secret, ttl: ttl}, nil
}

// Issue signs a token carrying subject, issuer, and roles, expiring ttl from
// now.
func (p *TokenProvider) Issue(subject, issuer string, roles []string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
		Roles: roles,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(p.secret)
}

// Verify parses and validates the token (signature and expiry) and returns
// its claims. Malformed input, a signature mismatch, or an expired token all
// fail with apperr.ErrInvalidToken.
func (p *TokenProvider) Verify(tokenString string) (*TokenInfo, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, apperr.ErrInvalidToken
	}
	return &TokenInfo{
		Subject:   claims.Subject,
		Issuer:    claims.Issuer,
		Roles:     claims.Roles,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
