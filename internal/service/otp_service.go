package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/utils"

	"go.opentelemetry.io/otel"
)

const (
	otpLength = 6
	otpTTL    = 5 * time.Minute
)

type OTPStore interface {
	Replace(ctx context.Context, otp *model.OTP) error
	FindValid(ctx context.Context, phone, code string, now time.Time) (*model.OTP, error)
	FindByPhone(ctx context.Context, phone string) (*model.OTP, error)
	DeleteByPhone(ctx context.Context, phone string) error
}

// SMSSender delivers the code to the phone. Delivery is best effort;
// the code is always readable from the log in development.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

var OTPServiceTracer = otel.Tracer("OTPService")

type OTPService struct {
	otps OTPStore
	sms  SMSSender
}

// NewOTPService accepts a nil sender when no SMS gateway is configured.
func NewOTPService(otps OTPStore, sms SMSSender) *OTPService {
	return &OTPService{
		otps: otps,
		sms:  sms,
	}
}

// Send generates a fresh code for the phone, replacing any previous one.
func (s *OTPService) Send(ctx context.Context, req model.SendOTPRequest) (*model.OTPResponse, error) {
	ctx, span := OTPServiceTracer.Start(ctx, "OTPService.Send")
	defer span.End()
	logger.Info(ctx, "Service")

	phone := strings.TrimSpace(req.Phone)
	if len(phone) < 10 {
		return nil, ruleErr("Invalid phone number")
	}

	now := time.Now().UTC()
	otp := &model.OTP{
		Phone:     phone,
		Code:      utils.RandomDigits(otpLength),
		CreatedAt: now,
		ExpiresAt: now.Add(otpTTL),
	}
	if err := s.otps.Replace(ctx, otp); err != nil {
		return nil, err
	}

	logger.Info(ctx, "OTP generated",
		slog.String("phone", phone),
		slog.String("code", otp.Code),
		slog.Time("expires_at", otp.ExpiresAt),
	)

	if s.sms != nil {
		message := "Your PolluxKart verification code is " + otp.Code + ". Valid for 5 minutes."
		if err := s.sms.Send(ctx, phone, message); err != nil {
			logger.Warn(ctx, "OTP SMS delivery failed",
				slog.String("phone", phone),
				slog.String("error", err.Error()),
			)
		}
	}

	return &model.OTPResponse{
		Success: true,
		Message: "OTP sent to " + phone + ". Valid for 5 minutes.",
	}, nil
}

// Verify consumes a code. Valid codes are single use.
func (s *OTPService) Verify(ctx context.Context, req model.VerifyOTPRequest) (*model.OTPResponse, error) {
	ctx, span := OTPServiceTracer.Start(ctx, "OTPService.Verify")
	defer span.End()
	logger.Info(ctx, "Service")

	phone := strings.TrimSpace(req.Phone)
	code := strings.TrimSpace(req.Code)

	if phone == "" || code == "" {
		return nil, ruleErr("Phone number and OTP code are required")
	}
	if len(code) != otpLength {
		return nil, ruleErr("OTP must be 6 digits")
	}

	now := time.Now().UTC()
	otp, err := s.otps.FindValid(ctx, phone, code, now)
	if err != nil {
		return nil, err
	}
	if otp == nil {
		existing, err := s.otps.FindByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ruleErr("No OTP found for this phone number. Please request OTP first.")
		}
		if existing.ExpiresAt.Before(now) {
			return nil, ruleErr("OTP has expired. Please request a new one.")
		}
		return nil, ruleErr("Invalid OTP code")
	}

	if err := s.otps.DeleteByPhone(ctx, phone); err != nil {
		return nil, err
	}

	logger.Info(ctx, "OTP verified", slog.String("phone", phone))

	return &model.OTPResponse{
		Success: true,
		Message: "Phone number verified successfully",
	}, nil
}

// Debug exposes the current code for a phone. Development only.
func (s *OTPService) Debug(ctx context.Context, phone string) (*model.OTP, error) {
	ctx, span := OTPServiceTracer.Start(ctx, "OTPService.Debug")
	defer span.End()
	logger.Info(ctx, "Service")

	return s.otps.FindByPhone(ctx, phone)
}
