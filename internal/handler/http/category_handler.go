package http

import (
	"net/http"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type CategoryHandler struct {
	service *service.CategoryService
}

var HttpCategoryHandlerTracer = otel.Tracer("HttpCategoryHandler")

func NewCategoryHandler(service *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCategoryHandlerTracer.Start(r.Context(), "HttpCategoryHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpCategoryHandler")

	categories, err := h.service.List(ctx)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCategoryHandlerTracer.Start(r.Context(), "HttpCategoryHandler.Create")
	defer span.End()
	logger.Info(ctx, "HttpCategoryHandler")

	var req model.CategoryCreate
	if !decodeValid(w, r, &req) {
		return
	}

	category, err := h.service.Create(ctx, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCategoryHandlerTracer.Start(r.Context(), "HttpCategoryHandler.Update")
	defer span.End()
	logger.Info(ctx, "HttpCategoryHandler")

	var req model.CategoryUpdate
	if !decodeValid(w, r, &req) {
		return
	}

	category, err := h.service.Update(ctx, r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCategoryHandlerTracer.Start(r.Context(), "HttpCategoryHandler.Delete")
	defer span.End()
	logger.Info(ctx, "HttpCategoryHandler")

	if err := h.service.Delete(ctx, r.PathValue("id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
