package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable time function.
// Exported for use by tests in this module; not part of the public API.
func NewTestJWTService(
	secret string,
	tokenLifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: tokenLifetime,
		timeFunc:      timeFunc,
		clockSkew:     0, // No leeway so expiry tests behave deterministically
	}
}
