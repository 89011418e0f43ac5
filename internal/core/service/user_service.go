package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/climawatch/weather-api/internal/core/domain"
	"github.com/climawatch/weather-api/internal/core/ports"
)

// UserService implements administrative user management.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	upd := ports.UserUpdate{}

	if in.Name != nil {
		if err := domain.ValidateName(*in.Name); err != nil {
			return nil, err
		}
		upd.Name = in.Name
	}
	if in.Email != nil {
		if err := domain.ValidateEmail(*in.Email); err != nil {
			return nil, err
		}
		upd.Email = in.Email
	}
	if in.Password != nil {
		if err := domain.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		upd.PasswordHash = &hashed
	}
	if in.Role != nil {
		role, err := domain.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		upd.Role = &role
	}

	user, err := s.repo.UpdateByID(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) DeleteStudents(ctx context.Context, startDate, endDate string) (int64, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return 0, err
	}
	deleted, err := s.repo.DeleteStudentsByLastLogin(ctx, start, end)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("deleted", deleted).Time("start", start).Time("end", end).Msg("bulk-deleted students")
	return deleted, nil
}

func (s *UserService) ReassignRoles(ctx context.Context, startDate, endDate, role string) (int64, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return 0, err
	}

	target := domain.RoleTeacher
	if role != "" {
		parsed, err := domain.ParseRole(role)
		if err != nil {
			return 0, err
		}
		target = parsed
	}

	modified, err := s.repo.UpdateRolesByCreatedAt(ctx, start, end, target)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("modified", modified).Str("role", string(target)).Msg("bulk-reassigned roles")
	return modified, nil
}

// parseDateRange requires both bounds and accepts either a date or an
// RFC 3339 timestamp.
func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: both start and end dates are required", domain.ErrInvalidDateRange)
	}
	start, err := parseTimestamp(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseTimestamp(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q", domain.ErrInvalidDateRange, s)
}
