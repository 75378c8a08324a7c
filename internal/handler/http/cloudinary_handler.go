package http

import (
	"net/http"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/storage"

	"go.opentelemetry.io/otel"
)

const cloudinaryUnconfiguredDetail = "Cloudinary is not configured. Please set CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, and CLOUDINARY_API_SECRET environment variables."

type CloudinaryHandler struct {
	signer *storage.CloudinarySigner
}

var HttpCloudinaryHandlerTracer = otel.Tracer("HttpCloudinaryHandler")

func NewCloudinaryHandler(signer *storage.CloudinarySigner) *CloudinaryHandler {
	return &CloudinaryHandler{
		signer: signer,
	}
}

// Signature signs the parameter set the Cloudinary upload widget will send,
// so browsers upload directly without the API secret ever leaving here.
func (h *CloudinaryHandler) Signature(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCloudinaryHandlerTracer.Start(r.Context(), "HttpCloudinaryHandler.Signature")
	defer span.End()
	logger.Info(ctx, "HttpCloudinaryHandler")

	query := r.URL.Query()
	resourceType := query.Get("resource_type")
	if resourceType == "" {
		resourceType = "image"
	}
	if resourceType != "image" && resourceType != "video" {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "resource_type must be one of: image, video")
		return
	}
	folder := query.Get("folder")
	if folder == "" {
		folder = "products"
	}

	if !h.signer.Configured() {
		WriteJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", cloudinaryUnconfiguredDetail)
		return
	}
	if !storage.AllowedCloudinaryFolder(folder) {
		WriteJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid folder path")
		return
	}

	timestamp := time.Now().Unix()
	signature, err := h.signer.Sign(folder, resourceType, timestamp)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, model.CloudinarySignature{
		Signature:    signature,
		Timestamp:    timestamp,
		CloudName:    h.signer.CloudName(),
		APIKey:       h.signer.APIKey(),
		Folder:       folder,
		ResourceType: resourceType,
	})
}

// Config reports whether direct Cloudinary uploads are available. Public
// endpoint.
func (h *CloudinaryHandler) Config(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpCloudinaryHandlerTracer.Start(r.Context(), "HttpCloudinaryHandler.Config")
	defer span.End()
	logger.Info(ctx, "HttpCloudinaryHandler")

	WriteJSON(w, http.StatusOK, model.CloudinaryConfig{
		Configured: h.signer.Configured(),
		CloudName:  h.signer.CloudName(),
	})
}
