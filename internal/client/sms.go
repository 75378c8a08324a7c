package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"polluxkart-admin/internal/logger"
)

// SMSGateway delivers OTP text messages through an external HTTP gateway.
type SMSGateway struct {
	http *HTTPClient
}

type smsPayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func NewSMSGateway(baseURL string, timeout time.Duration) *SMSGateway {
	return &SMSGateway{
		http: NewHTTPClient(baseURL, timeout),
	}
}

// Send posts one message to the gateway. The gateway's own response body is
// not interpreted beyond the status code.
func (g *SMSGateway) Send(ctx context.Context, phone, message string) error {
	resp, err := g.http.Post(ctx, "/messages", smsPayload{
		Phone:   phone,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	if !resp.IsSuccess() {
		logger.Warn(ctx, "SMS gateway rejected message",
			slog.Int("status_code", resp.StatusCode),
		)
		return fmt.Errorf("sms gateway: unexpected status %d", resp.StatusCode)
	}
	return nil
}
