package api

import (
	"log"
	"time"

	"github.com/CrossCheckCME/case_service/config"
	"github.com/CrossCheckCME/case_service/infra/queue"
	"github.com/CrossCheckCME/case_service/internal/api/rest/handlers"
	"github.com/CrossCheckCME/case_service/internal/api/rest/middleware"
	"github.com/CrossCheckCME/case_service/internal/clients/stripeclient"
	"github.com/CrossCheckCME/case_service/internal/domain"
	"github.com/CrossCheckCME/case_service/internal/helper"
	"github.com/CrossCheckCME/case_service/internal/interfaces"
	"github.com/CrossCheckCME/case_service/internal/repository"
	"github.com/CrossCheckCME/case_service/internal/services"
	"github.com/CrossCheckCME/case_service/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // headroom above the 20MB per-file cap
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260830

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Case{},
		&domain.CaseDocument{},
		&domain.UserTermsAgreement{},
		&domain.TermsOfService{},
		&domain.StripeCustomer{},
		&domain.AdminSettings{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	seedAdminSettings(db)
	seedTerms(db)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	var up interfaces.Uploader
	if cfg.CloudinaryURL != "" {
		cld, err := cloudinary.New()
		if err != nil {
			log.Fatalf("cloudinary init error: %v", err)
		}
		up = cloudinary.NewCloudinaryUploader(cld)
	} else {
		log.Println("CLOUDINARY_URL not set - document bytes will not be transferred")
	}

	billingClient := stripeclient.New(cfg.StripeSecretKey)
	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	termsRepo := repository.NewTermsRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, authHelper)
	caseSvc := services.NewCaseService(caseRepo, docRepo, termsRepo, settingsRepo, kafkaProducer)
	docSvc := services.NewDocumentService(caseRepo, docRepo, up, kafkaProducer)
	billingSvc := services.NewBillingService(billingRepo, billingClient, cfg.StripePortalReturnURL)

	// ---------- Payments consumer ----------
	if cfg.KafkaPaymentsTopic != "" {
		paymentsHandler := services.NewPaymentEventsHandler(caseRepo)
		consumer := queue.NewKafkaConsumer(
			cfg.KafkaBroker,
			cfg.KafkaPaymentsTopic,
			cfg.KafkaGroupID,
			paymentsHandler,
		)
		go consumer.Listen()
	}

	// ---------- Handlers ----------
	authHandler := handlers.NewAuthHandler(authSvc)
	caseHandler := handlers.NewCaseHandler(caseSvc)
	docHandler := handlers.NewDocumentHandler(docSvc)
	billingHandler := handlers.NewBillingHandler(billingSvc)

	apiGroup := app.Group("/api")
	authHandler.SetupPublicRoutes(apiGroup)

	apiGroup.Use(middleware.AuthMiddleware(authHelper))
	authHandler.SetupProtectedRoutes(apiGroup)
	caseHandler.SetupRoutes(apiGroup)
	docHandler.SetupRoutes(apiGroup)
	billingHandler.SetupRoutes(apiGroup)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func seedAdminSettings(db *gorm.DB) {
	var s domain.AdminSettings
	err := db.Where("singleton_id = ?", true).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		_ = db.Create(&domain.AdminSettings{
			SingletonID: true,
			IsAvailable: true,
		}).Error
	}
}

func seedTerms(db *gorm.DB) {
	var t domain.TermsOfService
	err := db.Where("is_latest = ?", true).First(&t).Error
	if err == gorm.ErrRecordNotFound {
		_ = db.Create(&domain.TermsOfService{
			Version:       "1.0",
			Content:       "Terms of service placeholder. Replace before launch.",
			EffectiveDate: time.Now(),
			IsLatest:      true,
		}).Error
	}
}
