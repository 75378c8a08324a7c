package http

import (
	"net/http"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type OrderHandler struct {
	service *service.OrderService
}

var HttpOrderHandlerTracer = otel.Tracer("HttpOrderHandler")

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpOrderHandlerTracer.Start(r.Context(), "HttpOrderHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpOrderHandler")

	page, pageSize, ok, detail := parsePagination(r)
	if !ok {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", detail)
		return
	}
	query := r.URL.Query()

	orders, err := h.service.List(ctx, model.OrderListQuery{
		Page:     page,
		PageSize: pageSize,
		Status:   query.Get("status"),
		Search:   query.Get("search"),
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpOrderHandlerTracer.Start(r.Context(), "HttpOrderHandler.UpdateStatus")
	defer span.End()
	logger.Info(ctx, "HttpOrderHandler")

	query := r.URL.Query()
	status := query.Get("status")
	if status == "" {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "status is required")
		return
	}

	order, err := h.service.UpdateStatus(ctx, r.PathValue("id"), status, query.Get("tracking_number"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}
