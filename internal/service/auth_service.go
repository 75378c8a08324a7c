package service

import (
	"context"
	"strings"
	"time"

	"polluxkart-admin/internal/auth"
	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

// UserStore is the slice of the user collection the services need.
type UserStore interface {
	Insert(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	List(ctx context.Context, page, pageSize int, search string) ([]model.User, int64, error)
	UpdateRole(ctx context.Context, id string, role model.UserRole) (int64, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
	FindAdmins(ctx context.Context) ([]model.User, error)
}

var AuthServiceTracer = otel.Tracer("AuthService")

type AuthService struct {
	users    UserStore
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(users UserStore, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Register creates a user account with the default role and logs it in.
func (s *AuthService) Register(ctx context.Context, req model.UserCreate) (*model.TokenResponse, error) {
	ctx, span := AuthServiceTracer.Start(ctx, "AuthService.Register")
	defer span.End()
	logger.Info(ctx, "Service")

	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)

	exists, err := s.users.ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ruleErr("User with this email or phone already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		Phone:     phone,
		Name:      req.Name,
		Password:  hash,
		Role:      model.RoleUser,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	return s.tokenFor(user)
}

// Login authenticates by email or phone.
func (s *AuthService) Login(ctx context.Context, req model.UserLogin) (*model.TokenResponse, error) {
	ctx, span := AuthServiceTracer.Start(ctx, "AuthService.Login")
	defer span.End()
	logger.Info(ctx, "Service")

	user, err := s.users.FindByIdentifier(ctx, strings.TrimSpace(req.Identifier))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.tokenFor(user)
}

// ResetPassword sets a new password for the account matching the
// identifier. There is no email round-trip; the storefront gates this
// behind OTP verification.
func (s *AuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) (*model.ResetPasswordResponse, error) {
	ctx, span := AuthServiceTracer.Start(ctx, "AuthService.ResetPassword")
	defer span.End()
	logger.Info(ctx, "Service")

	if req.NewPassword != req.ConfirmPassword {
		return nil, ruleErr("Passwords do not match")
	}
	if len(req.NewPassword) < 6 {
		return nil, ruleErr("Password must be at least 6 characters")
	}

	user, err := s.users.FindByIdentifier(ctx, strings.TrimSpace(req.Identifier))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return nil, err
	}

	matched, err := s.users.UpdatePassword(ctx, user.ID, hash)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, notFound("User")
	}

	return &model.ResetPasswordResponse{
		Success: true,
		Message: "Password reset successfully. You can now login with your new password.",
	}, nil
}

// Profile returns the account behind a token subject.
func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	ctx, span := AuthServiceTracer.Start(ctx, "AuthService.Profile")
	defer span.End()
	logger.Info(ctx, "Service")

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User")
	}
	return user, nil
}

func (s *AuthService) tokenFor(user *model.User) (*model.TokenResponse, error) {
	token, err := auth.CreateToken(s.secret, user.ID, string(user.Role), user.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{
		AccessToken: token,
		User:        user,
	}, nil
}
