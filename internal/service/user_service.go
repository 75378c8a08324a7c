package service

import (
	"context"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"go.opentelemetry.io/otel"
)

var UserServiceTracer = otel.Tracer("UserService")

// UserService covers the admin-side user management surface.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, page, pageSize int, search string) (*model.UserPage, error) {
	ctx, span := UserServiceTracer.Start(ctx, "UserService.List")
	defer span.End()
	logger.Info(ctx, "Service")

	users, total, err := s.users.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, err
	}
	return &model.UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id, role string) (*model.User, error) {
	ctx, span := UserServiceTracer.Start(ctx, "UserService.UpdateRole")
	defer span.End()
	logger.Info(ctx, "Service")

	next := model.UserRole(role)
	if !next.Valid() {
		return nil, ruleErr("Invalid role. Valid: user, admin, super_admin")
	}

	matched, err := s.users.UpdateRole(ctx, id, next)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, notFound("User")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User")
	}
	return user, nil
}
