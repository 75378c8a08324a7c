package http

import (
	"net/http"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/service"

	"go.opentelemetry.io/otel"
)

type OTPHandler struct {
	service *service.OTPService
}

var HttpOTPHandlerTracer = otel.Tracer("HttpOTPHandler")

func NewOTPHandler(service *service.OTPService) *OTPHandler {
	return &OTPHandler{
		service: service,
	}
}

func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpOTPHandlerTracer.Start(r.Context(), "HttpOTPHandler.Send")
	defer span.End()
	logger.Info(ctx, "HttpOTPHandler")

	var req model.SendOTPRequest
	if !decodeValid(w, r, &req) {
		return
	}

	resp, err := h.service.Send(ctx, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpOTPHandlerTracer.Start(r.Context(), "HttpOTPHandler.Verify")
	defer span.End()
	logger.Info(ctx, "HttpOTPHandler")

	var req model.VerifyOTPRequest
	if !decodeValid(w, r, &req) {
		return
	}

	resp, err := h.service.Verify(ctx, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Debug exposes the current code for a phone so development flows can
// complete without a real SMS gateway. Not for production.
func (h *OTPHandler) Debug(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpOTPHandlerTracer.Start(r.Context(), "HttpOTPHandler.Debug")
	defer span.End()
	logger.Info(ctx, "HttpOTPHandler")

	otp, err := h.service.Debug(ctx, r.PathValue("phone"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if otp == nil {
		WriteJSON(w, http.StatusOK, map[string]string{"message": "No OTP found for this phone number"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"otp": map[string]any{
			"phone":      otp.Phone,
			"code":       otp.Code,
			"expires_at": otp.ExpiresAt.Format(time.RFC3339),
		},
		"note": "This endpoint should be removed in production!",
	})
}
