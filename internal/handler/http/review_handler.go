package http

import (
	"net/http"

	"polluxkart-admin/internal/logger"
	middleware "polluxkart-admin/internal/middleware/http"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type ReviewHandler struct {
	service *service.ReviewService
}

var HttpReviewHandlerTracer = otel.Tracer("HttpReviewHandler")

func NewReviewHandler(service *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpReviewHandlerTracer.Start(r.Context(), "HttpReviewHandler.List")
	defer span.End()
	logger.Info(ctx, "HttpReviewHandler")

	reviews, err := h.service.ListForProduct(ctx, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpReviewHandlerTracer.Start(r.Context(), "HttpReviewHandler.Create")
	defer span.End()
	logger.Info(ctx, "HttpReviewHandler")

	var req model.ReviewCreate
	if !decodeValid(w, r, &req) {
		return
	}
	claims := middleware.ClaimsFrom(ctx)

	review, err := h.service.Create(ctx, r.PathValue("id"), claims.UserID(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, review)
}
