package ports

import (
	"context"

	"github.com/climawatch/weather-api/internal/core/domain"
)

// UpdateUserInput carries a partial user update from the transport layer.
// Password, when present, is plaintext and gets hashed by the service.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// DeleteStudents bulk-deletes Student accounts whose last login falls in
	// the given date range.
	DeleteStudents(ctx context.Context, startDate, endDate string) (int64, error)
	// ReassignRoles bulk-updates the role of users created in the given date
	// range. An empty role defaults to Teacher.
	ReassignRoles(ctx context.Context, startDate, endDate, role string) (int64, error)
}
