package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polluxkart-admin/internal/client"
	"polluxkart-admin/internal/config"
	"polluxkart-admin/internal/database"
	handler "polluxkart-admin/internal/handler/http"
	"polluxkart-admin/internal/logger"
	middleware_http "polluxkart-admin/internal/middleware/http"
	"polluxkart-admin/internal/repository"
	"polluxkart-admin/internal/service"
	"polluxkart-admin/internal/storage"
	"polluxkart-admin/internal/tracer"
	"polluxkart-admin/internal/version"
)

func main() {
	globalCtx := context.Background()
	log := logger.Instance()
	cfg := config.Instance()

	log.Info(cfg.AppName,
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("buildTime", version.BuildTime),
	)

	// Initialize telemetry (OpenTelemetry + Pyroscope)
	shutdownTracer, _ := tracer.Instance(globalCtx)
	defer shutdownTracer()

	// Connect to MongoDB
	db, err := database.Instance(globalCtx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Storage backends
	localStore, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Error("Failed to prepare upload directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	s3Store := storage.NewS3Store(globalCtx, cfg.S3BucketName, cfg.S3Region, cfg.S3BaseURL)
	cloudinarySigner := storage.NewCloudinarySigner(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)

	// Repositories
	userRepo := repository.NewUserRepository(db.Database)
	productRepo := repository.NewProductRepository(db.Database)
	categoryRepo := repository.NewCategoryRepository(db.Database)
	brandRepo := repository.NewBrandRepository(db.Database)
	inventoryRepo := repository.NewInventoryRepository(db.Database)
	promotionRepo := repository.NewPromotionRepository(db.Database)
	orderRepo := repository.NewOrderRepository(db.Database)
	reviewRepo := repository.NewReviewRepository(db.Database)
	otpRepo := repository.NewOTPRepository(db.Database)
	maintenanceRepo := repository.NewMaintenanceRepository(db.Database)

	// Services
	tokenTTL := time.Duration(cfg.JWTExpireMinutes) * time.Minute
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, tokenTTL)
	setupService := service.NewSetupService(userRepo, cfg.AdminSetupKey, cfg.JWTSecret, tokenTTL)
	productService := service.NewProductService(productRepo, inventoryRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	brandService := service.NewBrandService(brandRepo, productRepo)
	promotionService := service.NewPromotionService(promotionRepo)
	orderService := service.NewOrderService(orderRepo)
	userService := service.NewUserService(userRepo)
	dashboardService := service.NewDashboardService(orderRepo, productRepo, userRepo, inventoryRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo, userRepo)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo)
	healthService := service.NewHealthService(db.Client)

	var sms service.SMSSender
	if cfg.SMSGatewayHttpURI != "" {
		sms = client.NewSMSGateway(cfg.SMSGatewayHttpURI, 10*time.Second)
	}
	otpService := service.NewOTPService(otpRepo, sms)

	// Routing
	guard := middleware_http.NewGuard(cfg.JWTSecret)
	mux := handler.NewRouter(guard, handler.Handlers{
		Health:      handler.NewHealthHandler(healthService, cfg.AppName),
		Auth:        handler.NewAuthHandler(authService),
		Setup:       handler.NewSetupHandler(setupService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Product:     handler.NewProductHandler(productService),
		Category:    handler.NewCategoryHandler(categoryService),
		Brand:       handler.NewBrandHandler(brandService),
		Promotion:   handler.NewPromotionHandler(promotionService),
		Order:       handler.NewOrderHandler(orderService),
		User:        handler.NewUserHandler(userService),
		Review:      handler.NewReviewHandler(reviewService),
		Upload:      handler.NewUploadHandler(localStore),
		S3:          handler.NewS3Handler(s3Store),
		Cloudinary:  handler.NewCloudinaryHandler(cloudinarySigner),
		OTP:         handler.NewOTPHandler(otpService),
		Maintenance: handler.NewMaintenanceHandler(maintenanceService),
	})

	// HTTP server
	wrappedMux := middleware_http.TraceMiddleware(globalCtx)(mux)
	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("HTTP server running", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM, then drain in-flight requests.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	log.Info("Shutdown signal received", slog.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error", slog.String("error", err.Error()))
	}
	if err := db.Client.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", slog.String("error", err.Error()))
	}
	log.Info("Server stopped")
}
