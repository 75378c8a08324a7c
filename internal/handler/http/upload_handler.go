package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/storage"

	"go.opentelemetry.io/otel"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// bodies spill to temp files.
const maxUploadMemory = 32 << 20

type UploadHandler struct {
	store *storage.LocalStore
}

var HttpUploadHandlerTracer = otel.Tracer("HttpUploadHandler")

func NewUploadHandler(store *storage.LocalStore) *UploadHandler {
	return &UploadHandler{
		store: store,
	}
}

// Upload stores a single image on local disk and returns its serving URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpUploadHandlerTracer.Start(r.Context(), "HttpUploadHandler.Upload")
	defer span.End()
	logger.Info(ctx, "HttpUploadHandler")

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

	result, errMsg, err := h.saveImage(header, file)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if errMsg != "" {
		WriteJSONError(w, http.StatusBadRequest, "Bad Request", errMsg)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// UploadMultiple stores up to ten images, silently skipping files that fail
// type or size validation.
func (h *UploadHandler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpUploadHandlerTracer.Start(r.Context(), "HttpUploadHandler.UploadMultiple")
	defer span.End()
	logger.Info(ctx, "HttpUploadHandler")

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
		WriteJSONError(w, http.StatusBadRequest, "Bad Request", "Maximum 10 files allowed per upload")
		return
	}

	results := []model.ImageUploadResponse{}
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			continue
		}
		result, errMsg, err := h.saveImage(header, file)
		file.Close()
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		if errMsg != "" {
			continue
		}
		results = append(results, *result)
	}
	WriteJSON(w, http.StatusOK, results)
}

// saveImage validates and persists one multipart file. A non-empty errMsg
// means the file was rejected; err means the write itself failed.
func (h *UploadHandler) saveImage(header *multipart.FileHeader, file multipart.File) (result *model.ImageUploadResponse, errMsg string, err error) {
	contentType := header.Header.Get("Content-Type")
	if !storage.AllowedLocalImageType(contentType) {
		return nil, fmt.Sprintf("File type not allowed. Allowed: %s", strings.Join(storage.LocalImageTypes, ", ")), nil
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	if len(content) > storage.MaxLocalImageSize {
		return nil, "File size exceeds 5MB limit", nil
	}

	name, err := h.store.Save(header.Filename, content)
	if err != nil {
		return nil, "", err
	}
	return &model.ImageUploadResponse{
		URL:         "/api/uploads/" + name,
		Filename:    name,
		Size:        len(content),
		ContentType: contentType,
	}, "", nil
}

// Serve streams a previously uploaded file back to the caller.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpUploadHandlerTracer.Start(r.Context(), "HttpUploadHandler.Serve")
	defer span.End()
	logger.Info(ctx, "HttpUploadHandler")

	path, err := h.store.Resolve(r.PathValue("filename"))
	if err != nil {
		WriteJSONError(w, http.StatusNotFound, "Not Found", "File not found")
		return
	}
	if _, err := os.Stat(path); err != nil {
		WriteJSONError(w, http.StatusNotFound, "Not Found", "File not found")
		return
	}
	http.ServeFile(w, r, path)
}
