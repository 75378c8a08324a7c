package http

import (
	"net/http"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type UserHandler struct {
	service *service.UserService
}

var HttpUserHandlerTracer = otel.Tracer("HttpUserHandler")

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpUserHandlerTracer.Start(r.Context(), "HttpUserHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpUserHandler")

	page, pageSize, ok, detail := parsePagination(r)
	if !ok {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", detail)
		return
	}

	users, err := h.service.List(ctx, page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpUserHandlerTracer.Start(r.Context(), "HttpUserHandler.UpdateRole")
	defer span.End()
	logger.Info(ctx, "HttpUserHandler")

	role := r.URL.Query().Get("role")
	if role == "" {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "role is required")
		return
	}

	user, err := h.service.UpdateRole(ctx, r.PathValue("id"), role)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}
