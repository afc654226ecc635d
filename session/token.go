package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether tok is a JWT whose exp claim has passed.
// The claims are read without signature verification; verifying tokens is
// the platform's job, this only avoids hydrating a session the platform
// would reject anyway. Tokens that are not JWTs, or JWTs without an exp
// claim, are assumed live.
func TokenExpired(tok string, now time.Time) bool {
	claims := jwtlib.MapClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
