package service

import (
	"context"
	"errors"
	"testing"

	"polluxkart-admin/internal/model"
)

func TestUserList(t *testing.T) {
	users := &fakeUserStore{users: []model.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Password: "hash1", Role: model.RoleUser},
		{ID: "u2", Email: "bob@example.com", Name: "Bob", Password: "hash2", Role: model.RoleAdmin},
		{ID: "u3", Email: "carol@shop.example", Name: "Carol", Password: "hash3", Role: model.RoleUser},
	}}
	svc := NewUserService(users)

	page, err := svc.List(context.Background(), 1, 2, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 || len(page.Users) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	for _, u := range page.Users {
		if u.Password != "" {
			t.Fatalf("password hash leaked for %q", u.Email)
		}
	}

	page, err = svc.List(context.Background(), 1, 20, "example.com")
	if err != nil {
		t.Fatalf("list search: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", page.Total)
	}
}

func TestUserUpdateRole(t *testing.T) {
	users := &fakeUserStore{users: []model.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: model.RoleUser},
	}}
	svc := NewUserService(users)

	user, err := svc.UpdateRole(context.Background(), "u1", "admin")
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Fatalf("expected admin, got %q", user.Role)
	}

	_, err = svc.UpdateRole(context.Background(), "u1", "owner")
	var ruleError *RuleError
	if !errors.As(err, &ruleError) {
		t.Fatalf("expected rule error, got %v", err)
	}
	if ruleError.Message != "Invalid role. Valid: user, admin, super_admin" {
		t.Fatalf("unexpected message: %q", ruleError.Message)
	}

	if _, err := svc.UpdateRole(context.Background(), "missing", "admin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
