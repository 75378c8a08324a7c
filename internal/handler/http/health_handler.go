package http

import (
	"net/http"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type HealthHandler struct {
	service     *service.HealthService
	serviceName string
}

var HttpHealthHandlerTracer = otel.Tracer("HttpHealthHandler")

func NewHealthHandler(service *service.HealthService, serviceName string) *HealthHandler {
	return &HealthHandler{
		service:     service,
		serviceName: serviceName,
	}
}

// Root is the API banner.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpHealthHandlerTracer.Start(r.Context(), "HttpHealthHandler.Root")
	defer span.End()
	logger.Info(ctx, "HttpHealthHandler")

	WriteJSON(w, http.StatusOK, map[string]string{
		"message": h.serviceName + " API",
	})
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpHealthHandlerTracer.Start(r.Context(), "HttpHealthHandler.Check")
	defer span.End()
	logger.Info(ctx, "HttpHealthHandler")

	status := h.service.Check(ctx)

	overall := "healthy"
	code := http.StatusOK
	if !status.Healthy() {
		overall = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]string{
		"status":   overall,
		"service":  h.serviceName,
		"database": status.Database,
	})
}
