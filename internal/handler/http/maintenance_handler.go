package http

import (
	"net/http"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type MaintenanceHandler struct {
	service *service.MaintenanceService
}

var HttpMaintenanceHandlerTracer = otel.Tracer("HttpMaintenanceHandler")

func NewMaintenanceHandler(service *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{
		service: service,
	}
}

// CleanupSeedData wipes the seed collections, keeping user accounts. The
// confirm guard exists because there is no undo.
func (h *MaintenanceHandler) CleanupSeedData(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpMaintenanceHandlerTracer.Start(r.Context(), "HttpMaintenanceHandler.CleanupSeedData")
	defer span.End()
	logger.Info(ctx, "HttpMaintenanceHandler")

	confirm := r.URL.Query().Get("confirm")
	if confirm == "" {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "confirm is required")
		return
	}
	if confirm != "CONFIRM" {
		WriteJSONError(w, http.StatusBadRequest, "Bad Request", "You must pass confirm=CONFIRM to proceed with cleanup")
		return
	}

	deleted, err := h.service.CleanupSeedData(ctx)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Seed data cleanup complete",
		"deleted":   deleted,
		"preserved": []string{"users"},
	})
}
