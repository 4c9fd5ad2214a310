package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/accredhub/backend/internal/config"
	"github.com/accredhub/backend/internal/domain/fiber/handler"
	"github.com/accredhub/backend/internal/middleware"
	"github.com/accredhub/backend/internal/model"
	"github.com/accredhub/backend/internal/report"
	"github.com/accredhub/backend/internal/repository"
	"github.com/accredhub/backend/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	storageConfig := config.LoadStorageConfig()

	for _, dir := range []string{storageConfig.UploadDir, storageConfig.ReportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Could not create directory %s: %v", dir, err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	// Use middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: config.LoadAppConfig().Env != "production",
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return config.LoadAppConfig().Env != "production"
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	// Artifact and document URLs all live under the public upload prefix.
	app.Static("/uploads", storageConfig.UploadDir)

	db := ConnectDB()

	userRepo := repository.NewUserRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	criteriaRepo := repository.NewCriteriaRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	if err := evaluationRepo.Migrate(); err != nil {
		log.Fatal("evaluation index migration failed: ", err)
	}

	authUC := usecase.NewAuthUsecase(userRepo, schoolRepo)
	criteriaUC := usecase.NewCriteriaUsecase(criteriaRepo, userRepo)
	submissionUC := usecase.NewSubmissionUsecase(submissionRepo, criteriaRepo)
	evaluationUC := usecase.NewEvaluationUsecase(evaluationRepo, criteriaRepo, submissionRepo)
	reportUC := usecase.NewReportUsecase(evaluationRepo, report.NewGenerator(storageConfig.ReportDir))
	documentUC := usecase.NewDocumentUsecase(documentRepo)

	protect := middleware.Protect(userRepo)

	handler.NewUserHandler(authUC).RegisterRoutes(app, protect)
	handler.NewSchoolHandler(schoolRepo).RegisterRoutes(app, protect)
	handler.NewCriteriaHandler(criteriaUC).RegisterRoutes(app, protect)
	handler.NewSubmissionHandler(submissionUC).RegisterRoutes(app, protect)
	handler.NewEvaluationHandler(evaluationUC, criteriaUC, submissionUC, reportUC).RegisterRoutes(app, protect)
	handler.NewDocumentHandler(documentUC).RegisterRoutes(app, protect)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	// TranslateError lets callers detect duplicate-key conflicts with
	// errors.Is(err, gorm.ErrDuplicatedKey); the unique indexes are the only
	// guard against concurrent duplicate writes.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("could not create uuid extension: ", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.School{},
		&model.Criteria{},
		&model.StudentSubmission{},
		&model.Evaluation{},
		&model.Document{},
	)
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
