package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"leadbot-backend/internal/chat"
	"leadbot-backend/internal/companies"
	"leadbot-backend/internal/documents"
	"leadbot-backend/internal/onboarding"
	"leadbot-backend/internal/queue"
	"leadbot-backend/internal/scan"
	"leadbot-backend/internal/services/health"
	"leadbot-backend/internal/shared/config"
	"leadbot-backend/internal/shared/server"
	"leadbot-backend/internal/shared/storage/db"
	"leadbot-backend/internal/shared/storage/object"
	localstore "leadbot-backend/internal/shared/storage/object/local"
	miniostore "leadbot-backend/internal/shared/storage/object/minio"
	s3store "leadbot-backend/internal/shared/storage/object/s3"
	"leadbot-backend/internal/shared/telemetry"
	"leadbot-backend/internal/siteprobe"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	CompaniesService  *companies.Service
	DocumentsService  *documents.Service
	OnboardingService *onboarding.Service
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.StorageBucket) == "" {
		cfg.StorageBucket = "documents"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}
	deps := buildServices(app)
	app.Router = server.NewRouter(deps)

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"database":     sqlDB != nil,
		"scanner":      cfg.ClamAVAddr != "",
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	}
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.StorageBucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "minio":
		return miniostore.New(ctx, miniostore.Options{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.StorageBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.StorageBucket), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.ProvisioningQueueURL) == "" {
		return queue.Noop{}, nil
	}
	return queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.ProvisioningQueueURL)
}

func buildServices(app *App) server.RouterDeps {
	var companyRepo companies.Repo
	var docRepo documents.DocumentsRepo
	if app.DB != nil {
		companyRepo = &companies.PGRepo{DB: app.DB}
		docRepo = &documents.PGRepo{DB: app.DB}
	} else {
		companyRepo = companies.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
	}

	docSvc := &documents.Service{
		Store: app.Store,
		Repo:  docRepo,
	}
	if addr := strings.TrimSpace(app.Config.ClamAVAddr); addr != "" {
		docSvc.Scanner = scan.NewClamAV(addr)
	}

	companySvc := companies.NewService(companyRepo, docSvc)
	companySvc.ReadbackDelay = app.Config.CompanyReadbackDelay
	docSvc.Companies = companySvc

	onboardingSvc := &onboarding.Service{
		Companies: companySvc,
		Documents: docSvc,
		Queue:     app.Queue,
	}

	app.CompaniesService = companySvc
	app.DocumentsService = docSvc
	app.OnboardingService = onboardingSvc

	return server.RouterDeps{
		Config:            app.Config,
		Health:            health.NewService(app.DB),
		CompanyHandler:    companies.NewHandler(companySvc),
		OnboardingHandler: onboarding.NewHandler(onboardingSvc),
		DocumentHandler:   documents.NewHandler(docSvc),
		ChatHandler:       chat.NewHandler(chat.NewBot(), companySvc),
		SiteProbeHandler:  siteprobe.NewHandler(siteprobe.New()),
	}
}
