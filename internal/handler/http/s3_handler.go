package http

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"polluxkart-admin/internal/logger"
	middleware "polluxkart-admin/internal/middleware/http"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/storage"

	"go.opentelemetry.io/otel"
)

type S3Handler struct {
	store *storage.S3Store
}

var HttpS3HandlerTracer = otel.Tracer("HttpS3Handler")

func NewS3Handler(store *storage.S3Store) *S3Handler {
	return &S3Handler{
		store: store,
	}
}

// validateS3Image mirrors the checks run before any byte is read: filename
// present, extension on the whitelist, content type claiming to be an image.
func validateS3Image(header *multipart.FileHeader) string {
	if header.Filename == "" {
		return "No filename provided"
	}
	if !storage.AllowedS3Extension(header.Filename) {
		return fmt.Sprintf("File type not allowed. Allowed types: %s", strings.Join(storage.S3ImageExtensions, ", "))
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return "File must be an image"
	}
	return ""
}

func (h *S3Handler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpS3HandlerTracer.Start(r.Context(), "HttpS3Handler.UploadProductImage")
	defer span.End()
	logger.Info(ctx, "HttpS3Handler")

	productID := r.PathValue("id")
	h.uploadOne(ctx, w, r, func(filename string) string {
		return h.store.ProductKey(productID, filename)
	})
}

func (h *S3Handler) UploadCategoryImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpS3HandlerTracer.Start(r.Context(), "HttpS3Handler.UploadCategoryImage")
	defer span.End()
	logger.Info(ctx, "HttpS3Handler")

	categoryID := r.PathValue("id")
	h.uploadOne(ctx, w, r, func(filename string) string {
		return h.store.CategoryKey(categoryID, filename)
	})
}

// UploadAvatar stores the calling user's avatar; unlike the other media
// endpoints it is open to every authenticated user.
func (h *S3Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpS3HandlerTracer.Start(r.Context(), "HttpS3Handler.UploadAvatar")
	defer span.End()
	logger.Info(ctx, "HttpS3Handler")

	claims := middleware.ClaimsFrom(ctx)
	h.uploadOne(ctx, w, r, func(filename string) string {
		return h.store.AvatarKey(claims.UserID(), filename)
	})
}

// UploadTemp parks an image under temp/ so it can be uploaded before the
// product or category it belongs to exists.
func (h *S3Handler) UploadTemp(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpS3HandlerTracer.Start(r.Context(), "HttpS3Handler.UploadTemp")
	defer span.End()
	logger.Info(ctx, "HttpS3Handler")

	h.uploadOne(ctx, w, r, h.store.TempKey)
}

// uploadOne runs the single-file upload flow. Validation happens before the
// configuration check so a bad file reports 400 even on an unconfigured
// instance.
func (h *S3Handler) uploadOne(ctx context.Context, w http.ResponseWriter, r *http.Request, keyFor func(filename string) string) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "file is required")
		return
	}
	defer file.Close()

	if msg := validateS3Image(header); msg != "" {
		WriteJSONError(w, http.StatusBadRequest, "Bad Request", msg)
		return
	}
	if !h.store.Configured() {
		WriteJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "S3 storage is not configured")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if len(content) > storage.MaxS3ImageSize {
		WriteJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("File too large. Maximum size: %dMB", storage.MaxS3ImageSize/(1024*1024)))
		return
	}

	key := keyFor(header.Filename)
	url, err := h.store.Upload(ctx, key, content, header.Header.Get("Content-Type"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, model.S3UploadResponse{Success: true, URL: url, Key: key})
}

// UploadProductImages uploads up to ten images for one product, collecting
// per-file failures instead of aborting the batch.
func (h *S3Handler) UploadProductImages(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpS3HandlerTracer.Start(r.Context(), "HttpS3Handler.UploadProductImages")
	defer span.End()
	logger.Info(ctx, "HttpS3Handler")

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "invalid multipart form")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "files is required")
		return
	}
	if len(headers) > 10 {
		WriteJSONError(w, http.StatusBadRequest, "Bad Request", "Maximum 10 images per upload")
		return
	}
	if !h.store.Configured() {
		WriteJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "S3 storage is not configured")
		return
	}

	productID := r.PathValue("id")
	result := model.S3MultiUploadResponse{URLs: []string{}, Keys: []string{}, Failed: []string{}}

	for _, header := range headers {
		if msg := validateS3Image(header); msg != "" {
			result.Failed = append(result.Failed, header.Filename+": "+msg)
			continue
		}
		file, err := header.Open()
		if err != nil {
			result.Failed = append(result.Failed, header.Filename+": "+err.Error())
			continue
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			result.Failed = append(result.Failed, header.Filename+": "+err.Error())
			continue
		}
		if len(content) > storage.MaxS3ImageSize {
			result.Failed = append(result.Failed, header.Filename+": File too large")
			continue
		}

		key := h.store.ProductKey(productID, header.Filename)
		url, err := h.store.Upload(ctx, key, content, header.Header.Get("Content-Type"))
		if err != nil {
			result.Failed = append(result.Failed, header.Filename+": "+err.Error())
			continue
		}
		result.URLs = append(result.URLs, url)
		result.Keys = append(result.Keys, key)
	}

	result.Success = len(result.URLs) > 0
	WriteJSON(w, http.StatusOK, result)
}

// PresignedURL signs a direct browser upload. Product, category and temp
// destinations stay admin-only; avatars are keyed to the caller.
func (h *S3Handler) PresignedURL(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpS3HandlerTracer.Start(r.Context(), "HttpS3Handler.PresignedURL")
	defer span.End()
	logger.Info(ctx, "HttpS3Handler")

	query := r.URL.Query()
	uploadType := query.Get("type")
	if uploadType == "" {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "type is required")
		return
	}
	filename := query.Get("filename")
	if filename == "" {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "filename is required")
		return
	}
	contentType := query.Get("content_type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	claims := middleware.ClaimsFrom(ctx)
	if uploadType == "product" || uploadType == "category" || uploadType == "temp" {
		if !claims.IsAdmin() {
			WriteJSONError(w, http.StatusForbidden, "Forbidden", "Admin access required")
			return
		}
	}
	if !h.store.Configured() {
		WriteJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "S3 storage is not configured")
		return
	}

	entityID := query.Get("entity_id")
	var key string
	switch uploadType {
	case "product":
		if entityID == "" {
			WriteJSONError(w, http.StatusBadRequest, "Bad Request", "entity_id required for product")
			return
		}
		key = h.store.ProductKey(entityID, filename)
	case "category":
		if entityID == "" {
			WriteJSONError(w, http.StatusBadRequest, "Bad Request", "entity_id required for category")
			return
		}
		key = h.store.CategoryKey(entityID, filename)
	case "avatar":
		key = h.store.AvatarKey(claims.UserID(), filename)
	case "temp":
		key = h.store.TempKey(filename)
	default:
		WriteJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid type")
		return
	}

	presigned, err := h.store.PresignPut(ctx, key, contentType)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, presigned)
}

// Config reports the media storage setup so the frontend can pick an upload
// strategy. Public endpoint.
func (h *S3Handler) Config(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpS3HandlerTracer.Start(r.Context(), "HttpS3Handler.Config")
	defer span.End()
	logger.Info(ctx, "HttpS3Handler")

	cfg := model.UploadConfig{
		S3Configured:      h.store.Configured(),
		MaxFileSizeMB:     storage.MaxS3ImageSize / (1024 * 1024),
		AllowedExtensions: storage.S3ImageExtensions,
	}
	if cfg.S3Configured {
		cfg.BaseURL = h.store.BaseURL()
	}
	WriteJSON(w, http.StatusOK, cfg)
}
