package main

import (
	"context"
	"log/slog"
	"os"

	"polluxkart-admin/internal/config"
	"polluxkart-admin/internal/database"
	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/repository"
)

// Promotes an existing account to admin (or super_admin) from the shell,
// for deployments where the setup endpoints are already closed.
func main() {
	globalCtx := context.Background()
	log := logger.Instance()
	cfg := config.Instance()

	if len(os.Args) < 2 {
		log.Error("Usage: make-admin <email> [role]")
		os.Exit(1)
	}
	email := os.Args[1]
	role := model.RoleAdmin
	if len(os.Args) > 2 {
		role = model.UserRole(os.Args[2])
	}
	if !role.IsAdmin() {
		log.Error("Role must be admin or super_admin", slog.String("role", string(role)))
		os.Exit(1)
	}

	db, err := database.Instance(globalCtx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Client.Disconnect(globalCtx)

	users := repository.NewUserRepository(db.Database)

	user, err := users.FindByIdentifier(globalCtx, email)
	if err != nil {
		log.Error("Lookup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if user == nil {
		log.Error("No user with that email", slog.String("email", email))
		os.Exit(1)
	}

	modified, err := users.UpdateRoleByEmail(globalCtx, email, role)
	if err != nil {
		log.Error("Role update failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if modified == 0 {
		log.Info("User already holds the role",
			slog.String("email", user.Email),
			slog.String("role", string(user.Role)),
		)
		return
	}

	log.Info("Role updated",
		slog.String("email", user.Email),
		slog.String("from", string(user.Role)),
		slog.String("to", string(role)),
	)
}
