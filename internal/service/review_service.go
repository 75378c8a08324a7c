package service

import (
	"context"
	"math"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

type ReviewStore interface {
	Insert(ctx context.Context, review *model.Review) error
	FindByProduct(ctx context.Context, productID string) ([]model.Review, error)
	ExistsByProductAndUser(ctx context.Context, productID, userID string) (bool, error)
	RatingSummary(ctx context.Context, productID string) (float64, int, error)
}

var ReviewServiceTracer = otel.Tracer("ReviewService")

type ReviewService struct {
	reviews  ReviewStore
	products ProductStore
	users    UserStore
}

func NewReviewService(reviews ReviewStore, products ProductStore, users UserStore) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		users:    users,
	}
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID string) ([]model.Review, error) {
	ctx, span := ReviewServiceTracer.Start(ctx, "ReviewService.ListForProduct")
	defer span.End()
	logger.Info(ctx, "Service")

	return s.reviews.FindByProduct(ctx, productID)
}

// Create stores one review per user per product and recomputes the
// product's rating and review count.
func (s *ReviewService) Create(ctx context.Context, productID, userID string, req model.ReviewCreate) (*model.Review, error) {
	ctx, span := ReviewServiceTracer.Start(ctx, "ReviewService.Create")
	defer span.End()
	logger.Info(ctx, "Service")

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFound("Product")
	}

	exists, err := s.reviews.ExistsByProductAndUser(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ruleErr("You have already reviewed this product")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User")
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		UserName:  user.Name,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Insert(ctx, review); err != nil {
		return nil, err
	}

	avg, count, err := s.reviews.RatingSummary(ctx, productID)
	if err != nil {
		return nil, err
	}
	rating := math.Round(avg*10) / 10
	if err := s.products.SetRating(ctx, productID, rating, count); err != nil {
		return nil, err
	}

	return review, nil
}
