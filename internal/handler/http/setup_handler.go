package http

import (
	"net/http"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

// SetupHandler exposes the unauthenticated bootstrap endpoints. They
// stay open because the first admin has to be created before any token
// can exist; the setup key is the gate.
type SetupHandler struct {
	service *service.SetupService
}

var HttpSetupHandlerTracer = otel.Tracer("HttpSetupHandler")

func NewSetupHandler(service *service.SetupService) *SetupHandler {
	return &SetupHandler{
		service: service,
	}
}

func (h *SetupHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpSetupHandlerTracer.Start(r.Context(), "HttpSetupHandler.Status")
	defer span.End()
	logger.Info(ctx, "HttpSetupHandler")

	status, err := h.service.Status(ctx)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}

func (h *SetupHandler) AdminInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpSetupHandlerTracer.Start(r.Context(), "HttpSetupHandler.AdminInfo")
	defer span.End()
	logger.Info(ctx, "HttpSetupHandler")

	info, err := h.service.AdminInfo(ctx)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

func (h *SetupHandler) CreateInitialAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpSetupHandlerTracer.Start(r.Context(), "HttpSetupHandler.CreateInitialAdmin")
	defer span.End()
	logger.Info(ctx, "HttpSetupHandler")

	var req model.InitialAdminRequest
	if !decodeValid(w, r, &req) {
		return
	}

	token, err := h.service.CreateInitialAdmin(ctx, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, token)
}
