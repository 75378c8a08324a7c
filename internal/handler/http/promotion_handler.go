package http

import (
	"net/http"
	"strconv"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type PromotionHandler struct {
	service *service.PromotionService
}

var HttpPromotionHandlerTracer = otel.Tracer("HttpPromotionHandler")

func NewPromotionHandler(service *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{
		service: service,
	}
}

func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpPromotionHandlerTracer.Start(r.Context(), "HttpPromotionHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpPromotionHandler")

	promotions, err := h.service.List(ctx, r.URL.Query().Get("status"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, promotions)
}

func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpPromotionHandlerTracer.Start(r.Context(), "HttpPromotionHandler.Create")
	defer span.End()
	logger.Info(ctx, "HttpPromotionHandler")

	var req model.PromotionCreate
	if !decodeValid(w, r, &req) {
		return
	}

	promotion, err := h.service.Create(ctx, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, promotion)
}

func (h *PromotionHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpPromotionHandlerTracer.Start(r.Context(), "HttpPromotionHandler.Update")
	defer span.End()
	logger.Info(ctx, "HttpPromotionHandler")

	var req model.PromotionUpdate
	if !decodeValid(w, r, &req) {
		return
	}

	promotion, err := h.service.Update(ctx, r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, promotion)
}

func (h *PromotionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpPromotionHandlerTracer.Start(r.Context(), "HttpPromotionHandler.Delete")
	defer span.End()
	logger.Info(ctx, "HttpPromotionHandler")

	if err := h.service.Delete(ctx, r.PathValue("id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Promotion deleted successfully"})
}

// Validate checks a promotion code against an order total. Open to any
// authenticated user, not just admins, since checkout calls it.
func (h *PromotionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpPromotionHandlerTracer.Start(r.Context(), "HttpPromotionHandler.Validate")
	defer span.End()
	logger.Info(ctx, "HttpPromotionHandler")

	query := r.URL.Query()
	code := query.Get("code")
	if code == "" {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "code is required")
		return
	}
	rawTotal := query.Get("order_total")
	if rawTotal == "" {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "order_total is required")
		return
	}
	orderTotal, err := strconv.ParseFloat(rawTotal, 64)
	if err != nil {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "order_total must be a number")
		return
	}

	result, err := h.service.Validate(ctx, code, orderTotal)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
