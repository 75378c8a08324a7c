package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

type UserRepository struct {
	collection *mongo.Collection
}

var UserRepositoryTracer = otel.Tracer("UserRepository")

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

func (r *UserRepository) Insert(ctx context.Context, user *model.User) error {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository")

	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID returns nil without error when no user matches.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.FindByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIdentifier looks a user up by email or phone. Emails are stored
// lower-cased, phones verbatim.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.FindByIdentifier")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{"$or": []bson.M{
		{"email": strings.ToLower(identifier)},
		{"phone": identifier},
	}}

	var user model.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.ExistsByEmailOrPhone")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{"$or": []bson.M{
		{"email": email},
		{"phone": phone},
	}}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List pages users newest first; the password hash is never fetched.
func (r *UserRepository) List(ctx context.Context, page, pageSize int, search string) ([]model.User, int64, error) {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.List")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{}
	if search != "" {
		pattern := regexp.QuoteMeta(search)
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"email": bson.M{"$regex": pattern, "$options": "i"}},
			{"phone": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	users := make([]model.User, 0, pageSize)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role model.UserRole) (int64, error) {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.UpdateRole")
	defer span.End()
	logger.Info(ctx, "Repository")

	update := bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now().UTC(),
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// UpdateRoleByEmail returns the modified count so callers can tell an
// unknown email apart from a user who already holds the role.
func (r *UserRepository) UpdateRoleByEmail(ctx context.Context, email string, role model.UserRole) (int64, error) {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.UpdateRoleByEmail")
	defer span.End()
	logger.Info(ctx, "Repository")

	update := bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now().UTC(),
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"email": strings.ToLower(email)}, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (int64, error) {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.UpdatePassword")
	defer span.End()
	logger.Info(ctx, "Repository")

	update := bson.M{"$set": bson.M{
		"password":   passwordHash,
		"updated_at": time.Now().UTC(),
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.CountAll")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) CountAdmins(ctx context.Context) (int64, error) {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.CountAdmins")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{"role": bson.M{"$in": []model.UserRole{model.RoleAdmin, model.RoleSuperAdmin}}}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *UserRepository) FindAdmins(ctx context.Context) ([]model.User, error) {
	ctx, span := UserRepositoryTracer.Start(ctx, "UserRepository.FindAdmins")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{"role": bson.M{"$in": []model.UserRole{model.RoleAdmin, model.RoleSuperAdmin}}}
	opts := options.Find().SetProjection(bson.M{"password": 0})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	admins := make([]model.User, 0)
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}
