package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lamnguyen/folio/adapters/event"
	httpAdapter "github.com/lamnguyen/folio/adapters/http"
	"github.com/lamnguyen/folio/adapters/localstore"
	"github.com/lamnguyen/folio/adapters/media_storage"
	"github.com/lamnguyen/folio/adapters/persistence"
	"github.com/lamnguyen/folio/internal/application/backup"
	"github.com/lamnguyen/folio/internal/application/service"
	"github.com/lamnguyen/folio/internal/config"
	"github.com/lamnguyen/folio/internal/store"
	"github.com/lamnguyen/folio/pkg/auth"
	"github.com/lamnguyen/folio/pkg/logger"
	"github.com/lamnguyen/folio/pkg/tracing"
)

func main() {
	fmt.Println("Starting Folio API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "folio-api")
		if err != nil {
			appLogger.Fatal("Cannot init tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Local mirror, always required
	mirror, err := localstore.Open(cfg.Local.Path, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open local mirror", err)
	}
	defer mirror.Close()

	// Remote backend, optional
	var remote *store.Remote
	if cfg.RemoteConfigured() {
		dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Postgres", err)
		}
		defer dbPool.Close()

		remote = &store.Remote{
			Profile:     persistence.NewPostgresProfileRepo(dbPool, appLogger),
			Skills:      persistence.NewPostgresSkillRepo(dbPool, appLogger),
			Experiences: persistence.NewPostgresExperienceRepo(dbPool, appLogger),
			Projects:    persistence.NewPostgresProjectRepo(dbPool, appLogger),
		}
	}

	// Redis cache, optional
	cache := httpAdapter.NewCache(nil, appLogger)
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()
		cache = httpAdapter.NewCache(redisClient, appLogger)
	}

	// Kafka producer, optional
	var events store.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		events = kafkaClient
	}

	// Cloudinary uploader, optional
	var uploader service.Uploader
	if cfg.CloudinaryConfigured() {
		uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init uploader", err)
		}
	}

	// Portfolio store
	portfolioStore, err := store.New(store.Options{
		Mirror:          mirror,
		Remote:          remote,
		Uploader:        uploader,
		Events:          events,
		Logger:          appLogger,
		DefaultPassword: cfg.Admin.DefaultPassword,
	})
	if err != nil {
		appLogger.Fatal("Cannot create portfolio store", err)
	}
	defer portfolioStore.Close()

	if err := portfolioStore.Initialize(context.Background()); err != nil {
		appLogger.Fatal("Cannot initialize portfolio store", err)
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.Admin.JWTSecret, cfg.Admin.TokenLifespan)

	var backupUC *backup.BackupUseCase
	if uploader != nil {
		backupUC = backup.NewBackupUseCase(mirror.Path(), uploader, appLogger)
	}

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(portfolioStore, jwtSvc, appLogger)
	portfolioHandler := httpAdapter.NewPortfolioHandler(portfolioStore, cache, appLogger)
	profileHandler := httpAdapter.NewProfileHandler(portfolioStore, cache, appLogger)
	skillHandler := httpAdapter.NewSkillHandler(portfolioStore, cache, appLogger)
	experienceHandler := httpAdapter.NewExperienceHandler(portfolioStore, cache, appLogger)
	projectHandler := httpAdapter.NewProjectHandler(portfolioStore, cache, appLogger)
	backupHandler := httpAdapter.NewBackupHandler(backupUC, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	api := router.Group("/api")
	{
		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
			public.GET("/status", portfolioHandler.Status)
			public.GET("/profile", portfolioHandler.GetProfile)
			public.GET("/skills", portfolioHandler.GetSkills)
			public.GET("/experiences", portfolioHandler.GetExperiences)
			public.GET("/projects", portfolioHandler.GetProjects)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", authHandler.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(authMiddleware)
			{
				adminPrivate.POST("/auth/logout", authHandler.Logout)
				adminPrivate.PUT("/auth/password", authHandler.ChangePassword)

				adminPrivate.PUT("/profile", profileHandler.UpdateProfile)
				adminPrivate.PUT("/profile/image", profileHandler.UpdateProfileImage)
				adminPrivate.PUT("/profile/social-links/:platform", profileHandler.UpdateSocialLink)

				skills := adminPrivate.Group("/skills")
				{
					skills.POST("", skillHandler.AddSkill)
					skills.PUT("/:name", skillHandler.UpdateSkill)
					skills.DELETE("/:name", skillHandler.DeleteSkill)
				}

				experiences := adminPrivate.Group("/experiences")
				{
					experiences.POST("", experienceHandler.AddExperience)
					experiences.PUT("/:id", experienceHandler.UpdateExperience)
					experiences.DELETE("/:id", experienceHandler.DeleteExperience)
				}

				projects := adminPrivate.Group("/projects")
				{
					projects.POST("", projectHandler.AddProject)
					projects.PUT("/:id", projectHandler.UpdateProject)
					projects.DELETE("/:id", projectHandler.DeleteProject)
				}

				adminPrivate.POST("/backup", backupHandler.TriggerBackup)
			}
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
