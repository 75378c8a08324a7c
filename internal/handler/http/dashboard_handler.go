package http

import (
	"net/http"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type DashboardHandler struct {
	service *service.DashboardService
}

var HttpDashboardHandlerTracer = otel.Tracer("HttpDashboardHandler")

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpDashboardHandlerTracer.Start(r.Context(), "HttpDashboardHandler.Stats")
	defer span.End()
	logger.Info(ctx, "HttpDashboardHandler")

	stats, err := h.service.Stats(ctx)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
