package commerce

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the expiry from a bearer token when it is a JWT
// with an exp claim. The signature is deliberately not verified: clients
// only surface expiry so storefronts can refresh sessions proactively;
// verification belongs to the issuing backend. Opaque tokens report
// ok=false.
func TokenExpiry(token string) (expiry time.Time, ok bool) {
	if token == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// TokenExpiresWithin reports whether the token expires inside the given
// window. Tokens without a readable expiry never report true.
func TokenExpiresWithin(token string, window time.Duration) bool {
	expiry, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return time.Until(expiry) <= window
}
