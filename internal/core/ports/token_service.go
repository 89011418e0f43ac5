package ports

import "github.com/climawatch/weather-api/internal/core/domain"

// TokenClaims is the identity a verified token resolves to.
type TokenClaims struct {
	UserID string
	Role   domain.Role
}

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService interface {
	Issue(userID string, role domain.Role) (string, error)
	// Verify returns domain.ErrUnauthenticated for any bad, expired or
	// tampered token.
	Verify(token string) (*TokenClaims, error)
}
