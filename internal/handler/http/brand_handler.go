package http

import (
	"net/http"
	"strconv"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type BrandHandler struct {
	service *service.BrandService
}

var HttpBrandHandlerTracer = otel.Tracer("HttpBrandHandler")

func NewBrandHandler(service *service.BrandService) *BrandHandler {
	return &BrandHandler{
		service: service,
	}
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpBrandHandlerTracer.Start(r.Context(), "HttpBrandHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpBrandHandler")

	includeInactive := false
	if raw := r.URL.Query().Get("include_inactive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "include_inactive must be a boolean")
			return
		}
		includeInactive = v
	}

	brands, err := h.service.List(ctx, includeInactive)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, brands)
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpBrandHandlerTracer.Start(r.Context(), "HttpBrandHandler.Create")
	defer span.End()
	logger.Info(ctx, "HttpBrandHandler")

	var req model.BrandCreate
	if !decodeValid(w, r, &req) {
		return
	}

	brand, err := h.service.Create(ctx, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, brand)
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpBrandHandlerTracer.Start(r.Context(), "HttpBrandHandler.Update")
	defer span.End()
	logger.Info(ctx, "HttpBrandHandler")

	var req model.BrandUpdate
	if !decodeValid(w, r, &req) {
		return
	}

	brand, err := h.service.Update(ctx, r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpBrandHandlerTracer.Start(r.Context(), "HttpBrandHandler.Delete")
	defer span.End()
	logger.Info(ctx, "HttpBrandHandler")

	if err := h.service.Delete(ctx, r.PathValue("id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Brand deleted successfully"})
}

// Migrate seeds the brands collection from brand strings on products.
func (h *BrandHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpBrandHandlerTracer.Start(r.Context(), "HttpBrandHandler.Migrate")
	defer span.End()
	logger.Info(ctx, "HttpBrandHandler")

	result, err := h.service.Migrate(ctx)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Brand migration completed",
		"details": result,
	})
}
