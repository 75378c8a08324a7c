package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"polluxkart-admin/internal/model"
)

func TestRegisterLoginMe(t *testing.T) {
	app := setupApp(t)

	rr := app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "New@Example.COM",
		"phone":    "9812345678",
		"name":     "New User",
		"password": "secret1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var created model.TokenResponse
	decodeAs(t, rr, &created)
	if created.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if created.User == nil || created.User.Email != "new@example.com" {
		t.Fatalf("unexpected user %+v", created.User)
	}
	if created.User.Role != model.RoleUser {
		t.Fatalf("expected role user, got %q", created.User.Role)
	}

	// Identifier matching is case-insensitive for emails.
	rr = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"identifier": "NEW@example.com",
		"password":   "secret1",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"identifier": "new@example.com",
		"password":   "wrong",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "Invalid credentials" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	rr = app.do(t, http.MethodGet, "/api/auth/me", "Bearer "+created.AccessToken, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var me model.User
	decodeAs(t, rr, &me)
	if me.Email != "new@example.com" || me.Name != "New User" {
		t.Fatalf("unexpected profile %+v", me)
	}
	if strings.Contains(rr.Body.String(), "password") {
		t.Fatal("profile response leaks the password field")
	}
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "invalid JSON body" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	rr = app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "short@example.com",
		"phone":    "123",
		"name":     "Shorty",
		"password": "secret1",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}
	if e := errOf(t, rr); !strings.Contains(e.Details, "Phone") {
		t.Fatalf("expected a Phone validation error, got %q", e.Details)
	}

	rr = app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "admin@example.com",
		"phone":    "9812345678",
		"name":     "Copycat",
		"password": "secret1",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if e := errOf(t, rr); e.Details != "User with this email or phone already exists" {
		t.Fatalf("unexpected details %q", e.Details)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	app := setupApp(t)

	rr := app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "reset@example.com",
		"phone":    "9800011122",
		"name":     "Reset Me",
		"password": "oldpass",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = app.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"identifier":       "reset@example.com",
		"new_password":     "newpass",
		"confirm_password": "different",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "Passwords do not match" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	rr = app.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"identifier":       "reset@example.com",
		"new_password":     "newpass",
		"confirm_password": "newpass",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp model.ResetPasswordResponse
	decodeAs(t, rr, &resp)
	if !resp.Success {
		t.Fatal("expected success")
	}

	rr = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"identifier": "reset@example.com",
		"password":   "oldpass",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("old password still accepted: %d", rr.Code)
	}
	rr = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"identifier": "reset@example.com",
		"password":   "newpass",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("new password rejected: %d %s", rr.Code, rr.Body.String())
	}
}

func TestAuthGuards(t *testing.T) {
	app := setupApp(t)

	rr := app.do(t, http.MethodGet, "/api/auth/me", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Error != "Unauthorized" || e.Details != "Not authenticated" {
		t.Fatalf("unexpected body %+v", e)
	}

	rr = app.do(t, http.MethodGet, "/api/auth/me", "Bearer not-a-token", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "Could not validate credentials" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	rr = app.do(t, http.MethodGet, "/api/admin/dashboard", app.userToken(t), nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Error != "Forbidden" || e.Details != "Admin access required" {
		t.Fatalf("unexpected body %+v", e)
	}

	rr = app.do(t, http.MethodGet, "/api/admin/dashboard", app.adminToken(t), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestSetupFlow(t *testing.T) {
	app := setupApp(t)
	app.users.users = nil

	rr := app.do(t, http.MethodGet, "/api/admin/setup/status", "", nil)
	var status model.SetupStatus
	decodeAs(t, rr, &status)
	if status.AdminExists || !status.SetupAvailable {
		t.Fatalf("unexpected status %+v", status)
	}

	payload := map[string]string{
		"email":     "root@example.com",
		"phone":     "9000000001",
		"name":      "Root",
		"password":  "rootpass",
		"setup_key": "wrong-key",
	}
	rr = app.do(t, http.MethodPost, "/api/admin/setup/initial-admin", "", payload)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rr.Code, rr.Body.String())
	}
	if e := errOf(t, rr); e.Details != "Invalid setup key" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	payload["setup_key"] = testSetupKey
	rr = app.do(t, http.MethodPost, "/api/admin/setup/initial-admin", "", payload)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var created model.TokenResponse
	decodeAs(t, rr, &created)
	if created.User == nil || created.User.Role != model.RoleSuperAdmin {
		t.Fatalf("expected a super_admin, got %+v", created.User)
	}

	rr = app.do(t, http.MethodGet, "/api/admin/setup/status", "", nil)
	decodeAs(t, rr, &status)
	if !status.AdminExists || status.SetupAvailable {
		t.Fatalf("unexpected status after bootstrap %+v", status)
	}

	rr = app.do(t, http.MethodPost, "/api/admin/setup/initial-admin", "", payload)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "Admin user already exists" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	rr = app.do(t, http.MethodGet, "/api/admin/setup/admin-info", "", nil)
	var info model.AdminInfo
	decodeAs(t, rr, &info)
	if info.AdminCount != 1 || len(info.Admins) != 1 || info.Admins[0].Email != "root@example.com" {
		t.Fatalf("unexpected admin info %+v", info)
	}
}
