package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/krcglobal/gbms/internal/config"
)

// TokenValidator reports whether a stored token may still be used.
type TokenValidator func(token string) bool

// NonEmpty accepts any non-empty token.
func NonEmpty(token string) bool {
	return token != ""
}

// JWTExpiry accepts a token until its exp claim has passed. The signature
// is not checked; the backend does that. Tokens that are not JWTs, and JWTs
// without exp, fall back to NonEmpty.
func JWTExpiry(now func() time.Time) TokenValidator {
	if now == nil {
		now = time.Now
	}
	return func(token string) bool {
		if !NonEmpty(token) {
			return false
		}
		if strings.Count(token, ".") != 2 {
			return true
		}

		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return true
		}
		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil {
			return true
		}
		return now().Before(exp.Time)
	}
}

// ValidatorFor returns the validator for a config token check mode.
func ValidatorFor(mode string) TokenValidator {
	if mode == config.TokenCheckJWT {
		return JWTExpiry(time.Now)
	}
	return NonEmpty
}
