package service

import (
	"context"
	"testing"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
)

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, users, nil), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()

	user, token, _, err := svc.Register(context.Background(), "Jo Bloggs", "Jo@Example.com", "correct horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "jo@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("role = %s, want USER", user.Role)
	}
	if token == "" {
		t.Error("no token issued on register")
	}

	if _, _, _, err := svc.Register(context.Background(), "Dup", "jo@example.com", "whatever12"); err == nil {
		t.Fatal("duplicate email accepted")
	}

	if _, _, _, err := svc.Login(context.Background(), "jo@example.com", "wrong password"); err == nil {
		t.Fatal("wrong password accepted")
	}
	logged, token, _, err := svc.Login(context.Background(), "JO@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Error("login returned wrong identity")
	}
}

func TestLoginRejectsSuspended(t *testing.T) {
	svc, users := newAuthFixture()
	user, _, _, err := svc.Register(context.Background(), "Jo", "jo@example.com", "correct horse")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	user.Status = domain.UserStatusSuspended
	if err := users.Update(context.Background(), user); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "jo@example.com", "correct horse"); err == nil {
		t.Fatal("suspended account logged in")
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthFixture()
	user, _, _, err := svc.Register(context.Background(), "Jo", "jo@example.com", "old password")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "bad guess", "new password"); err == nil {
		t.Fatal("wrong current password accepted")
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "old password", "new password"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "jo@example.com", "old password"); err == nil {
		t.Fatal("old password still valid")
	}
	if _, _, _, err := svc.Login(context.Background(), "jo@example.com", "new password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestEnsureSeedAdmin(t *testing.T) {
	svc, users := newAuthFixture()

	if admin, err := svc.EnsureSeedAdmin(context.Background(), config.SeedConfig{}); err != nil || admin != nil {
		t.Fatalf("disabled seed: got (%v, %v), want (nil, nil)", admin, err)
	}

	seed := config.SeedConfig{
		AdminEmail:    "Ops@Example.com",
		AdminPassword: "correct horse",
		AdminName:     "Ops",
	}
	admin, err := svc.EnsureSeedAdmin(context.Background(), seed)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Errorf("role = %s, want ADMIN", admin.Role)
	}
	if admin.Email != "ops@example.com" {
		t.Errorf("email not normalized: %q", admin.Email)
	}

	logged, _, _, err := svc.Login(context.Background(), "ops@example.com", "correct horse")
	if err != nil {
		t.Fatalf("seed admin login: %v", err)
	}
	if !logged.IsAdmin() {
		t.Error("seed account cannot reach admin routes")
	}

	// A second boot finds the account and does not duplicate it.
	again, err := svc.EnsureSeedAdmin(context.Background(), seed)
	if err != nil {
		t.Fatalf("repeat seed: %v", err)
	}
	if again.ID != admin.ID {
		t.Errorf("repeat seed created new account %s, want %s", again.ID, admin.ID)
	}
	if n := len(users.users); n != 1 {
		t.Errorf("user count = %d, want 1", n)
	}
}
