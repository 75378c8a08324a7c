package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"polluxkart-admin/internal/auth"
	"polluxkart-admin/internal/model"
)

const testSecret = "test-secret"

func newAuthService(users *fakeUserStore) *AuthService {
	return NewAuthService(users, testSecret, time.Hour)
}

func TestRegisterIssuesToken(t *testing.T) {
	users := &fakeUserStore{}
	svc := newAuthService(users)

	resp, err := svc.Register(context.Background(), model.UserCreate{
		Email:    " Alice@Example.COM ",
		Phone:    "9876543210",
		Name:     "Alice",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected access token")
	}
	if resp.User.Email != "alice@example.com" {
		t.Fatalf("expected lower-cased email, got %q", resp.User.Email)
	}
	if resp.User.Role != model.RoleUser {
		t.Fatalf("expected role user, got %q", resp.User.Role)
	}
	if !resp.User.IsActive {
		t.Fatalf("expected active account")
	}
	if resp.User.Password == "hunter22" {
		t.Fatalf("password stored in plain text")
	}

	claims, err := auth.ParseToken(testSecret, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID() != resp.User.ID {
		t.Fatalf("expected subject %q, got %q", resp.User.ID, claims.UserID())
	}
	if claims.Role != "user" || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: role=%q email=%q", claims.Role, claims.Email)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	users := &fakeUserStore{}
	svc := newAuthService(users)

	req := model.UserCreate{Email: "bob@example.com", Phone: "9876543210", Name: "Bob", Password: "secret1"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	var ruleError *RuleError
	if !errors.As(err, &ruleError) {
		t.Fatalf("expected rule error, got %v", err)
	}
	if ruleError.Message != "User with this email or phone already exists" {
		t.Fatalf("unexpected message: %q", ruleError.Message)
	}
}

func TestLogin(t *testing.T) {
	users := &fakeUserStore{}
	svc := newAuthService(users)

	if _, err := svc.Register(context.Background(), model.UserCreate{
		Email:    "carol@example.com",
		Phone:    "9123456780",
		Name:     "Carol",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// By email, case-insensitive.
	resp, err := svc.Login(context.Background(), model.UserLogin{Identifier: "Carol@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login by email: %v", err)
	}
	if resp.User.Email != "carol@example.com" {
		t.Fatalf("unexpected user %q", resp.User.Email)
	}

	// By phone.
	if _, err := svc.Login(context.Background(), model.UserLogin{Identifier: "9123456780", Password: "secret1"}); err != nil {
		t.Fatalf("login by phone: %v", err)
	}

	// Wrong password and unknown identifier both come back as the same error.
	if _, err := svc.Login(context.Background(), model.UserLogin{Identifier: "carol@example.com", Password: "nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), model.UserLogin{Identifier: "ghost@example.com", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	users := &fakeUserStore{}
	svc := newAuthService(users)

	if _, err := svc.Register(context.Background(), model.UserCreate{
		Email:    "dave@example.com",
		Phone:    "9000000001",
		Name:     "Dave",
		Password: "oldpass",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name    string
		req     model.ResetPasswordRequest
		message string
	}{
		{
			name:    "mismatch",
			req:     model.ResetPasswordRequest{Identifier: "dave@example.com", NewPassword: "newpass1", ConfirmPassword: "newpass2"},
			message: "Passwords do not match",
		},
		{
			name:    "too short",
			req:     model.ResetPasswordRequest{Identifier: "dave@example.com", NewPassword: "abc", ConfirmPassword: "abc"},
			message: "Password must be at least 6 characters",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ResetPassword(context.Background(), tc.req)
			var ruleError *RuleError
			if !errors.As(err, &ruleError) {
				t.Fatalf("expected rule error, got %v", err)
			}
			if ruleError.Message != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, ruleError.Message)
			}
		})
	}

	if _, err := svc.ResetPassword(context.Background(), model.ResetPasswordRequest{
		Identifier: "ghost@example.com", NewPassword: "newpass", ConfirmPassword: "newpass",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	resp, err := svc.ResetPassword(context.Background(), model.ResetPasswordRequest{
		Identifier: "dave@example.com", NewPassword: "newpass", ConfirmPassword: "newpass",
	})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success")
	}

	if _, err := svc.Login(context.Background(), model.UserLogin{Identifier: "dave@example.com", Password: "oldpass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}
	if _, err := svc.Login(context.Background(), model.UserLogin{Identifier: "dave@example.com", Password: "newpass"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestProfile(t *testing.T) {
	users := &fakeUserStore{}
	svc := newAuthService(users)

	resp, err := svc.Register(context.Background(), model.UserCreate{
		Email:    "erin@example.com",
		Phone:    "9000000002",
		Name:     "Erin",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Profile(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if user.Name != "Erin" {
		t.Fatalf("expected Erin, got %q", user.Name)
	}

	if _, err := svc.Profile(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
