package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/climawatch/weather-api/internal/core/domain"
	"github.com/climawatch/weather-api/internal/core/ports"
	"github.com/climawatch/weather-api/pkg/logger"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = string(rune('a' + r.nextID))
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateByID(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastLogin = at
	}
	return nil
}

func (r *stubUserRepo) DeleteStudentsByLastLogin(_ context.Context, start, end time.Time) (int64, error) {
	var deleted int64
	for id, u := range r.users {
		if u.Role == domain.RoleStudent && !u.LastLogin.Before(start) && !u.LastLogin.After(end) {
			delete(r.users, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *stubUserRepo) UpdateRolesByCreatedAt(_ context.Context, start, end time.Time, role domain.Role) (int64, error) {
	var modified int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(start) && !u.CreatedAt.After(end) && u.Role != role {
			u.Role = role
			modified++
		}
	}
	return modified, nil
}

func (r *stubUserRepo) DeleteInactiveStudents(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for id, u := range r.users {
		if u.Role == domain.RoleStudent && !u.LastLogin.After(cutoff) {
			delete(r.users, id)
			deleted++
		}
	}
	return deleted, nil
}

type stubDenylist struct {
	revoked map[string]bool
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]bool)}
}

func (d *stubDenylist) Add(_ context.Context, token string, _ time.Duration) error {
	d.revoked[token] = true
	return nil
}

func (d *stubDenylist) Contains(_ context.Context, token string) (bool, error) {
	return d.revoked[token], nil
}

func newAuthService(repo *stubUserRepo) *AuthService {
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})
	return NewAuthService(repo, NewTokenService("secret", time.Hour), newStubDenylist(), log)
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, token, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.PasswordHash == "password1" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleStudent {
		t.Fatalf("expected default Student role, got %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	cases := []struct {
		name string
		in   ports.RegisterInput
	}{
		{"short name", ports.RegisterInput{Name: "ab", Email: "a@b.co", Password: "password1"}},
		{"bad email", ports.RegisterInput{Name: "alice", Email: "not-an-email", Password: "password1"}},
		{"short password", ports.RegisterInput{Name: "alice", Email: "a@b.co", Password: "short"}},
		{"unknown role", ports.RegisterInput{Name: "alice", Email: "a@b.co", Password: "password1", Role: "Wizard"}},
	}
	for _, tc := range cases {
		if _, _, err := svc.Register(context.Background(), tc.in); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	in := ports.RegisterInput{Name: "alice", Email: "alice@example.com", Password: "password1"}
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), in); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(repo.users))
	}
}

func TestAuthService_Register_CaseInsensitiveRole(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	user, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "sensor-1",
		Email:    "sensor@example.com",
		Password: "password1",
		Role:     "sensor",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleSensor {
		t.Fatalf("expected canonical Sensor role, got %s", user.Role)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "carol", Email: "carol@example.com", Password: "s3cret123", Role: "Teacher",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	before := time.Now().UTC()
	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.LastLogin.Before(before) {
		t.Fatalf("last login not updated: %v < %v", user.LastLogin, before)
	}

	claims, err := svc.tokens.Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Role != domain.RoleTeacher {
		t.Fatalf("token role %s does not match stored role", claims.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "carol", Email: "carol@example.com", Password: "s3cret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "carol@example.com", "wrong-pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	repo := newStubUserRepo()
	denylist := newStubDenylist()
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})
	svc := NewAuthService(repo, NewTokenService("secret", time.Hour), denylist, log)

	if err := svc.Logout(context.Background(), "some-token"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if revoked, _ := denylist.Contains(context.Background(), "some-token"); !revoked {
		t.Fatalf("token not denylisted")
	}
}
