package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	billingapp "github.com/schoolkart/backend/internal/application/billing"
	catalogapp "github.com/schoolkart/backend/internal/application/catalog"
	educationapp "github.com/schoolkart/backend/internal/application/education"
	identityapp "github.com/schoolkart/backend/internal/application/identity"
	partnerapp "github.com/schoolkart/backend/internal/application/partner"
	reportapp "github.com/schoolkart/backend/internal/application/report"
	"github.com/schoolkart/backend/internal/infrastructure/auth"
	"github.com/schoolkart/backend/internal/infrastructure/config"
	"github.com/schoolkart/backend/internal/infrastructure/gst"
	"github.com/schoolkart/backend/internal/infrastructure/logger"
	"github.com/schoolkart/backend/internal/infrastructure/pdf"
	"github.com/schoolkart/backend/internal/infrastructure/persistence"
	"github.com/schoolkart/backend/internal/interfaces/http/handler"
	"github.com/schoolkart/backend/internal/interfaces/http/middleware"
	"github.com/schoolkart/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SchoolKart backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	adminRepo := persistence.NewGormAdminRepository(db.DB)
	schoolRepo := persistence.NewGormSchoolRepository(db.DB)
	studentRepo := persistence.NewGormStudentRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Invoice PDF rendering is optional; it needs a headless Chrome
	var renderer billingapp.PDFRenderer
	if cfg.PDF.Enabled {
		chromeRenderer := pdf.NewRenderer(cfg.PDF.Timeout, log)
		defer func() {
			if err := chromeRenderer.Close(); err != nil {
				log.Error("Error closing PDF renderer", zap.Error(err))
			}
		}()
		renderer = chromeRenderer
		log.Info("PDF rendering enabled")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(adminRepo, jwtService, log)
	schoolService := educationapp.NewSchoolService(schoolRepo, reportRepo, log)
	studentService := educationapp.NewStudentService(studentRepo, schoolRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	invoiceService := billingapp.NewInvoiceService(
		invoiceRepo, commissionRepo, productRepo, studentRepo, schoolRepo, uow, renderer, log)
	purchaseService := billingapp.NewPurchaseService(purchaseRepo, supplierRepo, productRepo, uow, log)
	commissionService := billingapp.NewCommissionService(commissionRepo, schoolRepo, log)
	reportService := reportapp.NewReportService(reportRepo, log)
	gstClient := gst.NewClient(cfg.GST, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to configure validator", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDKey, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuth(middleware.Auth(jwtService, authService)),
	)
	r.Register(handler.NewSystemHandler())
	r.Register(handler.NewAuthHandler(authService))
	r.Register(handler.NewSchoolHandler(schoolService))
	r.Register(handler.NewStudentHandler(studentService))
	r.Register(handler.NewCategoryHandler(categoryService))
	r.Register(handler.NewProductHandler(productService))
	r.Register(handler.NewSupplierHandler(supplierService, gstClient))
	r.Register(handler.NewInvoiceHandler(invoiceService))
	r.Register(handler.NewPurchaseHandler(purchaseService))
	r.Register(handler.NewCommissionHandler(commissionService))
	r.Register(handler.NewReportHandler(reportService))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
