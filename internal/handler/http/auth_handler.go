package http

import (
	"net/http"

	"polluxkart-admin/internal/logger"
	middleware_http "polluxkart-admin/internal/middleware/http"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type AuthHandler struct {
	service *service.AuthService
}

var HttpAuthHandlerTracer = otel.Tracer("HttpAuthHandler")

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpAuthHandlerTracer.Start(r.Context(), "HttpAuthHandler.Register")
	defer span.End()
	logger.Info(ctx, "HttpAuthHandler")

	var req model.UserCreate
	if !decodeValid(w, r, &req) {
		return
	}

	token, err := h.service.Register(ctx, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, token)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpAuthHandlerTracer.Start(r.Context(), "HttpAuthHandler.Login")
	defer span.End()
	logger.Info(ctx, "HttpAuthHandler")

	var req model.UserLogin
	if !decodeValid(w, r, &req) {
		return
	}

	token, err := h.service.Login(ctx, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, token)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpAuthHandlerTracer.Start(r.Context(), "HttpAuthHandler.ResetPassword")
	defer span.End()
	logger.Info(ctx, "HttpAuthHandler")

	var req model.ResetPasswordRequest
	if !decodeValid(w, r, &req) {
		return
	}

	resp, err := h.service.ResetPassword(ctx, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Me returns the profile behind the presented token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpAuthHandlerTracer.Start(r.Context(), "HttpAuthHandler.Me")
	defer span.End()
	logger.Info(ctx, "HttpAuthHandler")

	claims := middleware_http.ClaimsFrom(ctx)
	user, err := h.service.Profile(ctx, claims.UserID())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}
