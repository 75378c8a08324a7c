package http

import (
	"net/http"

	middleware "polluxkart-admin/internal/middleware/http"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Setup       *SetupHandler
	Dashboard   *DashboardHandler
	Product     *ProductHandler
	Category    *CategoryHandler
	Brand       *BrandHandler
	Promotion   *PromotionHandler
	Order       *OrderHandler
	User        *UserHandler
	Review      *ReviewHandler
	Upload      *UploadHandler
	S3          *S3Handler
	Cloudinary  *CloudinaryHandler
	OTP         *OTPHandler
	Maintenance *MaintenanceHandler
}

// NewRouter mounts all routes. Literal segments win over wildcards, so
// /api/products/brands resolves before /api/products/{id}.
func NewRouter(guard *middleware.Guard, h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/{$}", h.Health.Root)
	mux.HandleFunc("GET /api/health", h.Health.Check)

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/reset-password", h.Auth.ResetPassword)
	mux.HandleFunc("GET /api/auth/me", guard.RequireUser(h.Auth.Me))

	// First-run setup. Open by necessity: the first admin exists only
	// after these run. The setup key is the gate.
	mux.HandleFunc("GET /api/admin/setup/status", h.Setup.Status)
	mux.HandleFunc("GET /api/admin/setup/admin-info", h.Setup.AdminInfo)
	mux.HandleFunc("POST /api/admin/setup/initial-admin", h.Setup.CreateInitialAdmin)

	// Public catalog
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/brands", h.Product.Brands)
	mux.HandleFunc("GET /api/products/categories", h.Product.Categories)
	mux.HandleFunc("GET /api/products/{id}", h.Product.Get)
	mux.HandleFunc("GET /api/products/{id}/reviews", h.Review.List)
	mux.HandleFunc("POST /api/products/{id}/reviews", guard.RequireUser(h.Review.Create))

	// OTP
	mux.HandleFunc("POST /api/otp/send", h.OTP.Send)
	mux.HandleFunc("POST /api/otp/verify", h.OTP.Verify)
	mux.HandleFunc("GET /api/otp/debug/{phone}", h.OTP.Debug)

	// Admin dashboard; /stats is the legacy alias the frontend still calls.
	mux.HandleFunc("GET /api/admin/dashboard", guard.RequireAdmin(h.Dashboard.Stats))
	mux.HandleFunc("GET /api/admin/stats", guard.RequireAdmin(h.Dashboard.Stats))

	// Admin catalog management
	mux.HandleFunc("POST /api/admin/products", guard.RequireAdmin(h.Product.Create))
	mux.HandleFunc("PUT /api/admin/products/{id}", guard.RequireAdmin(h.Product.Update))
	mux.HandleFunc("DELETE /api/admin/products/{id}", guard.RequireAdmin(h.Product.Delete))

	mux.HandleFunc("GET /api/admin/categories", guard.RequireAdmin(h.Category.List))
	mux.HandleFunc("POST /api/admin/categories", guard.RequireAdmin(h.Category.Create))
	mux.HandleFunc("PUT /api/admin/categories/{id}", guard.RequireAdmin(h.Category.Update))
	mux.HandleFunc("DELETE /api/admin/categories/{id}", guard.RequireAdmin(h.Category.Delete))

	mux.HandleFunc("GET /api/admin/brands", guard.RequireAdmin(h.Brand.List))
	mux.HandleFunc("POST /api/admin/brands", guard.RequireAdmin(h.Brand.Create))
	mux.HandleFunc("POST /api/admin/brands/migrate", guard.RequireAdmin(h.Brand.Migrate))
	mux.HandleFunc("PUT /api/admin/brands/{id}", guard.RequireAdmin(h.Brand.Update))
	mux.HandleFunc("DELETE /api/admin/brands/{id}", guard.RequireAdmin(h.Brand.Delete))

	// Promotions. Validation is open to any signed-in user so checkout
	// can price a cart.
	mux.HandleFunc("GET /api/admin/promotions", guard.RequireAdmin(h.Promotion.List))
	mux.HandleFunc("POST /api/admin/promotions", guard.RequireAdmin(h.Promotion.Create))
	mux.HandleFunc("POST /api/admin/promotions/validate", guard.RequireUser(h.Promotion.Validate))
	mux.HandleFunc("PUT /api/admin/promotions/{id}", guard.RequireAdmin(h.Promotion.Update))
	mux.HandleFunc("DELETE /api/admin/promotions/{id}", guard.RequireAdmin(h.Promotion.Delete))

	// Orders and users
	mux.HandleFunc("GET /api/admin/orders", guard.RequireAdmin(h.Order.List))
	mux.HandleFunc("PUT /api/admin/orders/{id}/status", guard.RequireAdmin(h.Order.UpdateStatus))
	mux.HandleFunc("GET /api/admin/users", guard.RequireAdmin(h.User.List))
	mux.HandleFunc("PUT /api/admin/users/{id}/role", guard.RequireAdmin(h.User.UpdateRole))

	// Local disk uploads and the static files they produce
	mux.HandleFunc("POST /api/admin/upload", guard.RequireAdmin(h.Upload.Upload))
	mux.HandleFunc("POST /api/admin/upload/multiple", guard.RequireAdmin(h.Upload.UploadMultiple))
	mux.HandleFunc("GET /api/uploads/{filename}", h.Upload.Serve)

	// S3 media
	mux.HandleFunc("POST /api/upload/product/{id}", guard.RequireAdmin(h.S3.UploadProductImage))
	mux.HandleFunc("POST /api/upload/product/{id}/multiple", guard.RequireAdmin(h.S3.UploadProductImages))
	mux.HandleFunc("POST /api/upload/category/{id}", guard.RequireAdmin(h.S3.UploadCategoryImage))
	mux.HandleFunc("POST /api/upload/avatar", guard.RequireUser(h.S3.UploadAvatar))
	mux.HandleFunc("POST /api/upload/temp", guard.RequireAdmin(h.S3.UploadTemp))
	mux.HandleFunc("GET /api/upload/presigned-url", guard.RequireUser(h.S3.PresignedURL))
	mux.HandleFunc("GET /api/upload/config", h.S3.Config)

	// Cloudinary direct upload
	mux.HandleFunc("GET /api/cloudinary/signature", guard.RequireUser(h.Cloudinary.Signature))
	mux.HandleFunc("GET /api/cloudinary/config", h.Cloudinary.Config)

	// Maintenance
	mux.HandleFunc("DELETE /api/admin/cleanup/seed-data", guard.RequireAdmin(h.Maintenance.CleanupSeedData))

	return mux
}
