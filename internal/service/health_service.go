package service

import (
	"context"
	"time"

	"polluxkart-admin/internal/logger"

	"go.opentelemetry.io/otel"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Pinger reports whether the document store is reachable. Satisfied by
// *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthService struct {
	db Pinger
}

type HealthStatus struct {
	Database string
}

func (h HealthStatus) Healthy() bool {
	return h.Database == "connected"
}

var HealthServiceTracer = otel.Tracer("HealthService")

func NewHealthService(db Pinger) *HealthService {
	return &HealthService{
		db: db,
	}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	ctx, span := HealthServiceTracer.Start(ctx, "HealthService.Check")
	defer span.End()
	logger.Info(ctx, "Service")

	status := HealthStatus{Database: "connected"}

	// MongoDB
	mongoCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.db.Ping(mongoCtx, nil); err != nil {
		status.Database = "disconnected"
	}

	return status
}
