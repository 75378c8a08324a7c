package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"polluxkart-admin/internal/model"
)

// In-memory stores backing the service tests. Each fake mirrors the
// query semantics of its Mongo counterpart closely enough that the
// services cannot tell the difference.

func ptr[T any](v T) *T {
	return &v
}

type fakeUserStore struct {
	users []model.User
}

func (f *fakeUserStore) Insert(ctx context.Context, user *model.User) error {
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Email == strings.ToLower(identifier) || f.users[i].Phone == identifier {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	for i := range f.users {
		if f.users[i].Email == email || f.users[i].Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) List(ctx context.Context, page, pageSize int, search string) ([]model.User, int64, error) {
	matched := []model.User{}
	for _, u := range f.users {
		if search != "" {
			haystack := strings.ToLower(u.Email + " " + u.Name + " " + u.Phone)
			if !strings.Contains(haystack, strings.ToLower(search)) {
				continue
			}
		}
		u.Password = ""
		matched = append(matched, u)
	}

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []model.User{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeUserStore) UpdateRole(ctx context.Context, id string, role model.UserRole) (int64, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Role = role
			f.users[i].UpdatedAt = time.Now().UTC()
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id, passwordHash string) (int64, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Password = passwordHash
			f.users[i].UpdatedAt = time.Now().UTC()
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeUserStore) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserStore) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role.IsAdmin() {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserStore) FindAdmins(ctx context.Context) ([]model.User, error) {
	admins := []model.User{}
	for _, u := range f.users {
		if u.Role.IsAdmin() {
			admins = append(admins, u)
		}
	}
	return admins, nil
}

type fakeProductStore struct {
	products []model.Product
}

func (f *fakeProductStore) Insert(ctx context.Context, product *model.Product) error {
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeProductStore) FindByID(ctx context.Context, id string) (*model.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductStore) List(ctx context.Context, q model.ProductListQuery) ([]model.Product, int64, error) {
	matched := []model.Product{}
	for _, p := range f.products {
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if q.Brand != "" && p.Brand != q.Brand {
			continue
		}
		if q.Search != "" {
			haystack := strings.ToLower(p.Name + " " + p.Description)
			if !strings.Contains(haystack, strings.ToLower(q.Search)) {
				continue
			}
		}
		if q.IsActive != nil && p.IsActive != *q.IsActive {
			continue
		}
		matched = append(matched, p)
	}

	total := int64(len(matched))
	start := (q.Page - 1) * q.PageSize
	if start >= len(matched) {
		return []model.Product{}, total, nil
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeProductStore) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	for i := range f.products {
		if f.products[i].ID != id {
			continue
		}
		p := &f.products[i]
		for k, v := range changes {
			switch k {
			case "name":
				p.Name = v.(string)
			case "description":
				p.Description = v.(string)
			case "price":
				p.Price = v.(float64)
			case "original_price":
				p.OriginalPrice = ptr(v.(float64))
			case "category_id":
				p.CategoryID = v.(string)
			case "brand":
				p.Brand = v.(string)
			case "sku":
				p.SKU = v.(string)
			case "stock":
				p.Stock = v.(int)
			case "images":
				p.Images = v.([]string)
			case "features":
				p.Features = v.([]string)
			case "is_active":
				p.IsActive = v.(bool)
			}
		}
		p.UpdatedAt = time.Now().UTC()
		return 1, nil
	}
	return 0, nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id string) (int64, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeProductStore) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Rating = rating
			f.products[i].ReviewCount = reviewCount
		}
	}
	return nil
}

func (f *fakeProductStore) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductStore) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductStore) CountByBrand(ctx context.Context, brandName string, activeOnly bool) (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.Brand != brandName {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		n++
	}
	return n, nil
}

func (f *fakeProductStore) DistinctBrands(ctx context.Context, activeOnly bool) ([]string, error) {
	seen := map[string]bool{}
	brands := []string{}
	for _, p := range f.products {
		if p.Brand == "" || seen[p.Brand] {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		seen[p.Brand] = true
		brands = append(brands, p.Brand)
	}
	sort.Strings(brands)
	return brands, nil
}

type fakeInventoryStore struct {
	rows []model.Inventory
}

func (f *fakeInventoryStore) Insert(ctx context.Context, inv *model.Inventory) error {
	f.rows = append(f.rows, *inv)
	return nil
}

func (f *fakeInventoryStore) SyncQuantity(ctx context.Context, productID string, quantity int) error {
	for i := range f.rows {
		if f.rows[i].ProductID == productID {
			f.rows[i].Quantity = quantity
			f.rows[i].LastUpdated = time.Now().UTC()
		}
	}
	return nil
}

func (f *fakeInventoryStore) DeleteByProduct(ctx context.Context, productID string) error {
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.ProductID != productID {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeInventoryStore) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var n int64
	for _, row := range f.rows {
		if row.Quantity <= threshold {
			n++
		}
	}
	return n, nil
}

func (f *fakeInventoryStore) byProduct(productID string) *model.Inventory {
	for i := range f.rows {
		if f.rows[i].ProductID == productID {
			return &f.rows[i]
		}
	}
	return nil
}

type fakeCategoryStore struct {
	categories []model.Category
}

func (f *fakeCategoryStore) Insert(ctx context.Context, category *model.Category) error {
	f.categories = append(f.categories, *category)
	return nil
}

func (f *fakeCategoryStore) FindByID(ctx context.Context, id string) (*model.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryStore) FindAll(ctx context.Context) ([]model.Category, error) {
	return append([]model.Category{}, f.categories...), nil
}

func (f *fakeCategoryStore) FindActive(ctx context.Context) ([]model.Category, error) {
	active := []model.Category{}
	for _, c := range f.categories {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (f *fakeCategoryStore) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	for i := range f.categories {
		if f.categories[i].ID != id {
			continue
		}
		c := &f.categories[i]
		for k, v := range changes {
			switch k {
			case "name":
				c.Name = v.(string)
			case "description":
				c.Description = v.(string)
			case "image":
				c.Image = v.(string)
			case "parent_id":
				c.ParentID = v.(string)
			case "is_active":
				c.IsActive = v.(bool)
			}
		}
		c.UpdatedAt = time.Now().UTC()
		return 1, nil
	}
	return 0, nil
}

func (f *fakeCategoryStore) Delete(ctx context.Context, id string) (int64, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeBrandStore struct {
	brands []model.Brand
}

func (f *fakeBrandStore) Insert(ctx context.Context, brand *model.Brand) error {
	f.brands = append(f.brands, *brand)
	return nil
}

func (f *fakeBrandStore) FindByID(ctx context.Context, id string) (*model.Brand, error) {
	for i := range f.brands {
		if f.brands[i].ID == id {
			b := f.brands[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBrandStore) ExistsByNameFold(ctx context.Context, name string) (bool, error) {
	for _, b := range f.brands {
		if strings.EqualFold(b.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBrandStore) ExistsByNameFoldExcept(ctx context.Context, name, exceptID string) (bool, error) {
	for _, b := range f.brands {
		if b.ID != exceptID && strings.EqualFold(b.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBrandStore) List(ctx context.Context, includeInactive bool) ([]model.Brand, error) {
	brands := []model.Brand{}
	for _, b := range f.brands {
		if !includeInactive && !b.IsActive {
			continue
		}
		brands = append(brands, b)
	}
	sort.Slice(brands, func(i, j int) bool {
		return strings.ToLower(brands[i].Name) < strings.ToLower(brands[j].Name)
	})
	return brands, nil
}

func (f *fakeBrandStore) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	for i := range f.brands {
		if f.brands[i].ID != id {
			continue
		}
		b := &f.brands[i]
		for k, v := range changes {
			switch k {
			case "name":
				b.Name = v.(string)
			case "description":
				b.Description = v.(string)
			case "logo":
				b.Logo = v.(string)
			case "website":
				b.Website = v.(string)
			case "is_active":
				b.IsActive = v.(bool)
			}
		}
		b.UpdatedAt = time.Now().UTC()
		return 1, nil
	}
	return 0, nil
}

func (f *fakeBrandStore) Delete(ctx context.Context, id string) (int64, error) {
	for i := range f.brands {
		if f.brands[i].ID == id {
			f.brands = append(f.brands[:i], f.brands[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakePromotionStore struct {
	promotions []model.Promotion
}

func (f *fakePromotionStore) Insert(ctx context.Context, promotion *model.Promotion) error {
	f.promotions = append(f.promotions, *promotion)
	return nil
}

func (f *fakePromotionStore) FindByID(ctx context.Context, id string) (*model.Promotion, error) {
	for i := range f.promotions {
		if f.promotions[i].ID == id {
			p := f.promotions[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePromotionStore) FindByCode(ctx context.Context, code string) (*model.Promotion, error) {
	for i := range f.promotions {
		if f.promotions[i].Code == code {
			p := f.promotions[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePromotionStore) List(ctx context.Context, status string) ([]model.Promotion, error) {
	promotions := []model.Promotion{}
	for _, p := range f.promotions {
		if status != "" && string(p.Status) != status {
			continue
		}
		promotions = append(promotions, p)
	}
	return promotions, nil
}

func (f *fakePromotionStore) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	for i := range f.promotions {
		if f.promotions[i].ID != id {
			continue
		}
		p := &f.promotions[i]
		for k, v := range changes {
			switch k {
			case "description":
				p.Description = v.(string)
			case "discount_type":
				p.DiscountType = v.(model.DiscountType)
			case "discount_value":
				p.DiscountValue = v.(float64)
			case "min_order_amount":
				p.MinOrderAmount = ptr(v.(float64))
			case "max_discount":
				p.MaxDiscount = ptr(v.(float64))
			case "usage_limit":
				p.UsageLimit = ptr(v.(int))
			case "per_user_limit":
				p.PerUserLimit = v.(int)
			case "start_date":
				p.StartDate = ptr(v.(time.Time))
			case "end_date":
				p.EndDate = ptr(v.(time.Time))
			case "applicable_categories":
				p.ApplicableCategories = v.([]string)
			case "applicable_products":
				p.ApplicableProducts = v.([]string)
			case "status":
				p.Status = v.(model.PromotionStatus)
			}
		}
		p.UpdatedAt = time.Now().UTC()
		return 1, nil
	}
	return 0, nil
}

func (f *fakePromotionStore) Delete(ctx context.Context, id string) (int64, error) {
	for i := range f.promotions {
		if f.promotions[i].ID == id {
			f.promotions = append(f.promotions[:i], f.promotions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeOrderStore struct {
	orders []model.Order
}

func (f *fakeOrderStore) FindByID(ctx context.Context, id string) (*model.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderStore) List(ctx context.Context, q model.OrderListQuery) ([]model.Order, int64, error) {
	matched := []model.Order{}
	for _, o := range f.orders {
		if q.Status != "" && string(o.Status) != q.Status {
			continue
		}
		if q.Search != "" {
			haystack := strings.ToLower(o.OrderNumber + " " + o.UserID)
			if !strings.Contains(haystack, strings.ToLower(q.Search)) {
				continue
			}
		}
		matched = append(matched, o)
	}

	total := int64(len(matched))
	start := (q.Page - 1) * q.PageSize
	if start >= len(matched) {
		return []model.Order{}, total, nil
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeOrderStore) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	for i := range f.orders {
		if f.orders[i].ID != id {
			continue
		}
		o := &f.orders[i]
		for k, v := range changes {
			switch k {
			case "status":
				o.Status = v.(model.OrderStatus)
			case "tracking_number":
				o.TrackingNumber = v.(string)
			case "delivered_at":
				o.DeliveredAt = ptr(v.(time.Time))
			}
		}
		o.UpdatedAt = time.Now().UTC()
		return 1, nil
	}
	return 0, nil
}

func (f *fakeOrderStore) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderStore) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var n int64
	for _, o := range f.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeOrderStore) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	for _, o := range f.orders {
		if !o.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeOrderStore) SumTotals(ctx context.Context, since *time.Time) (float64, error) {
	var sum float64
	for _, o := range f.orders {
		if since != nil && o.CreatedAt.Before(*since) {
			continue
		}
		sum += o.Total
	}
	return sum, nil
}

type fakeReviewStore struct {
	reviews []model.Review
}

func (f *fakeReviewStore) Insert(ctx context.Context, review *model.Review) error {
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewStore) FindByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	reviews := []model.Review{}
	for _, rv := range f.reviews {
		if rv.ProductID == productID {
			reviews = append(reviews, rv)
		}
	}
	return reviews, nil
}

func (f *fakeReviewStore) ExistsByProductAndUser(ctx context.Context, productID, userID string) (bool, error) {
	for _, rv := range f.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewStore) RatingSummary(ctx context.Context, productID string) (float64, int, error) {
	var sum float64
	var count int
	for _, rv := range f.reviews {
		if rv.ProductID == productID {
			sum += float64(rv.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

type fakeOTPStore struct {
	otps []model.OTP
}

func (f *fakeOTPStore) Replace(ctx context.Context, otp *model.OTP) error {
	_ = f.DeleteByPhone(ctx, otp.Phone)
	f.otps = append(f.otps, *otp)
	return nil
}

func (f *fakeOTPStore) FindValid(ctx context.Context, phone, code string, now time.Time) (*model.OTP, error) {
	for i := range f.otps {
		o := f.otps[i]
		if o.Phone == phone && o.Code == code && o.ExpiresAt.After(now) {
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeOTPStore) FindByPhone(ctx context.Context, phone string) (*model.OTP, error) {
	for i := range f.otps {
		if f.otps[i].Phone == phone {
			o := f.otps[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeOTPStore) DeleteByPhone(ctx context.Context, phone string) error {
	kept := f.otps[:0]
	for _, o := range f.otps {
		if o.Phone != phone {
			kept = append(kept, o)
		}
	}
	f.otps = kept
	return nil
}

type fakeMaintenanceStore struct {
	counts map[string]int64
}

func (f *fakeMaintenanceStore) CollectionCounts(ctx context.Context, names []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(names))
	for _, name := range names {
		counts[name] = f.counts[name]
	}
	return counts, nil
}

func (f *fakeMaintenanceStore) PurgeCollections(ctx context.Context, names []string) (map[string]int64, error) {
	deleted := make(map[string]int64, len(names))
	for _, name := range names {
		deleted[name] = f.counts[name]
		f.counts[name] = 0
	}
	return deleted, nil
}

type recordingSMS struct {
	phones   []string
	messages []string
	err      error
}

func (r *recordingSMS) Send(ctx context.Context, phone, message string) error {
	r.phones = append(r.phones, phone)
	r.messages = append(r.messages, message)
	return r.err
}
