package repository

import (
	"context"
	"errors"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

// OTPRepository keeps at most one code per phone; Mongo expires documents
// through the TTL index on expires_at.
type OTPRepository struct {
	collection *mongo.Collection
}

var OTPRepositoryTracer = otel.Tracer("OTPRepository")

func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{
		collection: db.Collection("otps"),
	}
}

// Replace drops any previous codes for the phone and stores the new one.
func (r *OTPRepository) Replace(ctx context.Context, otp *model.OTP) error {
	ctx, span := OTPRepositoryTracer.Start(ctx, "OTPRepository.Replace")
	defer span.End()
	logger.Info(ctx, "Repository")

	if _, err := r.collection.DeleteMany(ctx, bson.M{"phone": otp.Phone}); err != nil {
		return err
	}
	if _, err := r.collection.InsertOne(ctx, otp); err != nil {
		return err
	}
	return r.ensureTTLIndex(ctx)
}

// ensureTTLIndex is idempotent; CreateOne is a no-op when the index exists.
func (r *OTPRepository) ensureTTLIndex(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (r *OTPRepository) FindValid(ctx context.Context, phone, code string, now time.Time) (*model.OTP, error) {
	ctx, span := OTPRepositoryTracer.Start(ctx, "OTPRepository.FindValid")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{
		"phone":      phone,
		"code":       code,
		"expires_at": bson.M{"$gt": now},
	}

	var otp model.OTP
	err := r.collection.FindOne(ctx, filter).Decode(&otp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepository) FindByPhone(ctx context.Context, phone string) (*model.OTP, error) {
	ctx, span := OTPRepositoryTracer.Start(ctx, "OTPRepository.FindByPhone")
	defer span.End()
	logger.Info(ctx, "Repository")

	var otp model.OTP
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&otp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepository) DeleteByPhone(ctx context.Context, phone string) error {
	ctx, span := OTPRepositoryTracer.Start(ctx, "OTPRepository.DeleteByPhone")
	defer span.End()
	logger.Info(ctx, "Repository")

	_, err := r.collection.DeleteMany(ctx, bson.M{"phone": phone})
	return err
}
