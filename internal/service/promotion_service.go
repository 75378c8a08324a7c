package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

type PromotionStore interface {
	Insert(ctx context.Context, promotion *model.Promotion) error
	FindByID(ctx context.Context, id string) (*model.Promotion, error)
	FindByCode(ctx context.Context, code string) (*model.Promotion, error)
	List(ctx context.Context, status string) ([]model.Promotion, error)
	Update(ctx context.Context, id string, changes map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

var PromotionServiceTracer = otel.Tracer("PromotionService")

type PromotionService struct {
	promotions PromotionStore
}

func NewPromotionService(promotions PromotionStore) *PromotionService {
	return &PromotionService{promotions: promotions}
}

// Create inserts a promotion with its code upper-cased. Codes are unique.
func (s *PromotionService) Create(ctx context.Context, req model.PromotionCreate) (*model.Promotion, error) {
	ctx, span := PromotionServiceTracer.Start(ctx, "PromotionService.Create")
	defer span.End()
	logger.Info(ctx, "Service")

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := s.promotions.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ruleErr("Promotion code already exists")
	}

	discountType := req.DiscountType
	if discountType == "" {
		discountType = model.DiscountPercentage
	}
	perUserLimit := 1
	if req.PerUserLimit != nil {
		perUserLimit = *req.PerUserLimit
	}
	categories := req.ApplicableCategories
	if categories == nil {
		categories = []string{}
	}
	products := req.ApplicableProducts
	if products == nil {
		products = []string{}
	}

	now := time.Now().UTC()
	promotion := &model.Promotion{
		ID:                   uuid.NewString(),
		Code:                 code,
		Description:          req.Description,
		DiscountType:         discountType,
		DiscountValue:        req.DiscountValue,
		MinOrderAmount:       req.MinOrderAmount,
		MaxDiscount:          req.MaxDiscount,
		UsageLimit:           req.UsageLimit,
		PerUserLimit:         perUserLimit,
		TimesUsed:            0,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		ApplicableCategories: categories,
		ApplicableProducts:   products,
		Status:               model.PromotionActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.promotions.Insert(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

func (s *PromotionService) List(ctx context.Context, status string) ([]model.Promotion, error) {
	ctx, span := PromotionServiceTracer.Start(ctx, "PromotionService.List")
	defer span.End()
	logger.Info(ctx, "Service")

	return s.promotions.List(ctx, status)
}

func (s *PromotionService) Update(ctx context.Context, id string, req model.PromotionUpdate) (*model.Promotion, error) {
	ctx, span := PromotionServiceTracer.Start(ctx, "PromotionService.Update")
	defer span.End()
	logger.Info(ctx, "Service")

	changes := req.Changes()
	if len(changes) > 0 {
		matched, err := s.promotions.Update(ctx, id, changes)
		if err != nil {
			return nil, err
		}
		if matched == 0 {
			return nil, notFound("Promotion")
		}
	}

	promotion, err := s.promotions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, notFound("Promotion")
	}
	return promotion, nil
}

func (s *PromotionService) Delete(ctx context.Context, id string) error {
	ctx, span := PromotionServiceTracer.Start(ctx, "PromotionService.Delete")
	defer span.End()
	logger.Info(ctx, "Service")

	deleted, err := s.promotions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFound("Promotion")
	}
	return nil
}

// Validate checks a code against an order total and computes the
// discount. Every rejection is a business-rule error with the reason as
// the message.
func (s *PromotionService) Validate(ctx context.Context, code string, orderTotal float64) (*model.PromotionValidation, error) {
	ctx, span := PromotionServiceTracer.Start(ctx, "PromotionService.Validate")
	defer span.End()
	logger.Info(ctx, "Service")

	promotion, err := s.promotions.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ruleErr("Invalid promotion code")
	}

	if promotion.Status != model.PromotionActive {
		return nil, ruleErr("Promotion is not active")
	}

	now := time.Now().UTC()
	if promotion.StartDate != nil && now.Before(*promotion.StartDate) {
		return nil, ruleErr("Promotion has not started yet")
	}
	if promotion.EndDate != nil && now.After(*promotion.EndDate) {
		return nil, ruleErr("Promotion has expired")
	}
	if promotion.UsageLimit != nil && *promotion.UsageLimit > 0 && promotion.TimesUsed >= *promotion.UsageLimit {
		return nil, ruleErr("Promotion usage limit reached")
	}
	if promotion.MinOrderAmount != nil && *promotion.MinOrderAmount > 0 && orderTotal < *promotion.MinOrderAmount {
		return nil, ruleErr("Minimum order amount is ₹" + strconv.FormatFloat(*promotion.MinOrderAmount, 'f', -1, 64))
	}

	var discount float64
	if promotion.DiscountType == model.DiscountPercentage {
		discount = orderTotal * promotion.DiscountValue / 100
		if promotion.MaxDiscount != nil && *promotion.MaxDiscount > 0 {
			discount = math.Min(discount, *promotion.MaxDiscount)
		}
	} else {
		discount = promotion.DiscountValue
	}

	return &model.PromotionValidation{
		PromotionID:   promotion.ID,
		Code:          promotion.Code,
		Discount:      math.Round(discount*100) / 100,
		DiscountType:  promotion.DiscountType,
		DiscountValue: promotion.DiscountValue,
	}, nil
}
