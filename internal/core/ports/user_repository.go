package ports

import (
	"context"
	"time"

	"github.com/climawatch/weather-api/internal/core/domain"
)

// UserUpdate carries a partial user update. Nil fields are left untouched.
// Password is expected to arrive already hashed.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *domain.Role
}

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateByID(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// DeleteStudentsByLastLogin removes Student accounts whose last login
	// falls within [start, end] and reports how many were deleted.
	DeleteStudentsByLastLogin(ctx context.Context, start, end time.Time) (int64, error)
	// UpdateRolesByCreatedAt reassigns the role of every user created within
	// [start, end] and reports how many were modified.
	UpdateRolesByCreatedAt(ctx context.Context, start, end time.Time, role domain.Role) (int64, error)
	// DeleteInactiveStudents removes Student accounts whose last login is at
	// or before cutoff. Used by the retention scheduler.
	DeleteInactiveStudents(ctx context.Context, cutoff time.Time) (int64, error)
}
