package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
	RoleSensor  Role = "Sensor"
)

// DefaultRole is assigned when registration omits an explicit role.
const DefaultRole = RoleStudent

// Roles lists every valid role. Route allow-lists are validated against it
// at startup.
var Roles = []Role{RoleAdmin, RoleTeacher, RoleStudent, RoleSensor}

// ParseRole validates s against the role enumeration. Matching is
// case-insensitive but the canonical capitalized form is always returned.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidUser, s)
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	LastLogin    time.Time `json:"last_login"`
	CreatedAt    time.Time `json:"created_at"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minNameLen     = 3
	maxNameLen     = 30
	minPasswordLen = 8
)

// ValidateName checks the 3-30 character name constraint.
func ValidateName(name string) error {
	if l := len(name); l < minNameLen || l > maxNameLen {
		return fmt.Errorf("%w: name must be between %d and %d characters", ErrInvalidUser, minNameLen, maxNameLen)
	}
	return nil
}

// ValidateEmail checks email syntax.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidUser)
	}
	return nil
}

// ValidatePassword checks the minimum plaintext password length. It is only
// ever called before hashing.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidUser, minPasswordLen)
	}
	return nil
}
