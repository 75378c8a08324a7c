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

var SetupServiceTracer = otel.Tracer("SetupService")

// SetupService handles the one-time bootstrap of the first admin
// account on a fresh deployment.
type SetupService struct {
	users    UserStore
	setupKey string
	secret   string
	tokenTTL time.Duration
}

func NewSetupService(users UserStore, setupKey, secret string, tokenTTL time.Duration) *SetupService {
	return &SetupService{
		users:    users,
		setupKey: setupKey,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *SetupService) Status(ctx context.Context) (*model.SetupStatus, error) {
	ctx, span := SetupServiceTracer.Start(ctx, "SetupService.Status")
	defer span.End()
	logger.Info(ctx, "Service")

	count, err := s.users.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	return &model.SetupStatus{
		AdminExists:    count > 0,
		SetupAvailable: count == 0,
	}, nil
}

func (s *SetupService) AdminInfo(ctx context.Context) (*model.AdminInfo, error) {
	ctx, span := SetupServiceTracer.Start(ctx, "SetupService.AdminInfo")
	defer span.End()
	logger.Info(ctx, "Service")

	admins, err := s.users.FindAdmins(ctx)
	if err != nil {
		return nil, err
	}

	info := &model.AdminInfo{
		AdminCount: len(admins),
		Admins:     make([]model.AdminSummary, 0, len(admins)),
	}
	for _, a := range admins {
		info.Admins = append(info.Admins, model.AdminSummary{
			Email: a.Email,
			Name:  a.Name,
			Role:  a.Role,
		})
	}
	return info, nil
}

// CreateInitialAdmin creates the first super_admin. The setup key is
// checked before anything else so probing with a bad key reveals
// nothing about deployment state.
func (s *SetupService) CreateInitialAdmin(ctx context.Context, req model.InitialAdminRequest) (*model.TokenResponse, error) {
	ctx, span := SetupServiceTracer.Start(ctx, "SetupService.CreateInitialAdmin")
	defer span.End()
	logger.Info(ctx, "Service")

	if req.SetupKey != s.setupKey {
		return nil, ErrInvalidSetupKey
	}

	count, err := s.users.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ruleErr("Admin user already exists")
	}

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
		Role:      model.RoleSuperAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Initial admin created")

	token, err := auth.CreateToken(s.secret, user.ID, string(user.Role), user.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{
		AccessToken: token,
		User:        user,
	}, nil
}
