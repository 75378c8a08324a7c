package http

import (
	"net/http"
	"strconv"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type ProductHandler struct {
	service *service.ProductService
}

var HttpProductHandlerTracer = otel.Tracer("HttpProductHandler")

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Create")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	var req model.ProductCreate
	if !decodeValid(w, r, &req) {
		return
	}

	product, err := h.service.Create(ctx, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Update")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	var req model.ProductUpdate
	if !decodeValid(w, r, &req) {
		return
	}

	product, err := h.service.Update(ctx, r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Delete")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	if err := h.service.Delete(ctx, r.PathValue("id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// List is the public catalog listing.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	page, pageSize, ok, detail := parsePagination(r)
	if !ok {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", detail)
		return
	}

	q := model.ProductListQuery{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: r.URL.Query().Get("category_id"),
		Brand:      r.URL.Query().Get("brand"),
		Search:     r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "is_active must be a boolean")
			return
		}
		q.IsActive = &active
	}

	pageResp, err := h.service.List(ctx, q)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, pageResp)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Get")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	product, err := h.service.Get(ctx, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// Brands lists distinct brand names for the storefront filter bar.
func (h *ProductHandler) Brands(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Brands")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	brands, err := h.service.Brands(ctx)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, brands)
}

// Categories lists active categories for the storefront.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Categories")
	defer span.End()
	logger.Info(ctx, "HttpProductHandler")

	categories, err := h.service.ActiveCategories(ctx)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, categories)
}
