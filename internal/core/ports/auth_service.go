package ports

import (
	"context"
	"time"

	"github.com/climawatch/weather-api/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account. Role may be
// empty, in which case domain.DefaultRole applies.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the presented token for the remainder of its lifetime.
	Logout(ctx context.Context, token string) error
}

// TokenDenylist records revoked tokens until they would have expired anyway.
type TokenDenylist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}
