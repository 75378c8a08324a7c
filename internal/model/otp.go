package model

import "time"

// OTP codes are single use and expire server-side via a TTL index on
// expires_at.
type OTP struct {
	Phone     string    `json:"phone" bson:"phone"`
	Code      string    `json:"code" bson:"code"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// Phone shape is checked in the service after trimming, so a too-short
// number reads as a 400 rather than a schema error.
type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type OTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
