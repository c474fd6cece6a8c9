// Package bootstrap wires configuration, storage, services and handlers
// into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gin-gonic/gin"

	"inboxqualify-backend/internal/admins"
	"inboxqualify-backend/internal/alerts"
	"inboxqualify-backend/internal/analytics"
	"inboxqualify-backend/internal/batch"
	"inboxqualify-backend/internal/qualify"
	"inboxqualify-backend/internal/sentiment"
	"inboxqualify-backend/internal/services/health"
	"inboxqualify-backend/internal/shared/config"
	"inboxqualify-backend/internal/shared/server"
	"inboxqualify-backend/internal/shared/storage/db"
	"inboxqualify-backend/internal/shared/storage/object"
	localstore "inboxqualify-backend/internal/shared/storage/object/local"
	s3store "inboxqualify-backend/internal/shared/storage/object/s3"
	"inboxqualify-backend/internal/shared/telemetry"
	"inboxqualify-backend/internal/suggest"
	"inboxqualify-backend/internal/templates"
)

// Version is reported by the health endpoint and admin dashboard.
const Version = "2.0.0"

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store

	AnalyticsRepo analytics.Repo
	AdminsRepo    admins.Repo

	Classifier       sentiment.Classifier
	AnalyticsService *analytics.Service
	AdminService     *admins.Service
	QualifyService   *qualify.Service
	BatchService     *batch.Service
	Campaigns        *batch.Tracker
	AlertChecker     *alerts.Checker
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
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

	var analyticsRepo analytics.Repo
	var adminsRepo admins.Repo
	if sqlDB != nil {
		analyticsRepo = analytics.NewPGRepo(sqlDB)
		adminsRepo = admins.NewPGRepo(sqlDB)
	} else {
		analyticsRepo = analytics.NewMemoryRepo()
		adminsRepo = admins.NewMemoryRepo()
	}

	classifier := buildClassifier(cfg)
	blender := sentiment.NewBlender(classifier)

	analyticsSvc := analytics.NewService(analyticsRepo)
	adminSvc := admins.NewService(adminsRepo, cfg.AdminUsername, cfg.AdminPassword)
	qualifySvc := qualify.NewService(blender, analyticsSvc)
	healthSvc := health.NewService(Version, classifier != nil, sqlDB != nil)
	batchSvc := batch.NewService(store)
	campaigns := batch.NewTracker()

	var checker *alerts.Checker
	if cfg.SMTPHost != "" && len(cfg.AlertRecipients) > 0 {
		mailer := alerts.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		checker = alerts.NewChecker(analyticsRepo, mailer, cfg.AlertRecipients)
	}

	var alertTester admins.AlertTester
	if checker != nil {
		alertTester = checker
	}
	adminHandler := admins.NewHandler(adminSvc, analyticsSvc, alertTester, admins.SystemInfo{
		DatabaseType: databaseType(sqlDB),
		EmailAlerts:  checker != nil,
		AIService:    cfg.SentimentProvider,
	})

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Store:            store,
		AnalyticsRepo:    analyticsRepo,
		AdminsRepo:       adminsRepo,
		Classifier:       classifier,
		AnalyticsService: analyticsSvc,
		AdminService:     adminSvc,
		QualifyService:   qualifySvc,
		BatchService:     batchSvc,
		Campaigns:        campaigns,
		AlertChecker:     checker,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		QualifyHandler:  qualify.NewHandler(qualifySvc, healthSvc),
		TemplateHandler: templates.NewHandler(),
		SuggestHandler:  suggest.NewHandler(),
		BatchHandler:    batch.NewHandler(batchSvc, campaigns),
		AdminHandler:    adminHandler,
		AdminService:    adminSvc,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Warn("bootstrap.db.disabled", map[string]any{
			"reason": "DATABASE_URL empty, using in-memory repositories",
		})
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.fallback", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildClassifier picks the sentiment backend. A missing Hugging Face key
// degrades to the local VADER analyzer instead of disabling AI entirely.
func buildClassifier(cfg config.Config) sentiment.Classifier {
	switch cfg.SentimentProvider {
	case "off":
		return nil
	case "vader":
		return sentiment.NewVaderClassifier()
	default:
		client, err := sentiment.NewHFClient(cfg.HuggingFaceAPIKey)
		if err != nil {
			telemetry.Warn("bootstrap.sentiment.fallback", map[string]any{"error": err.Error()})
			return sentiment.NewVaderClassifier()
		}
		return client
	}
}

func databaseType(sqlDB *sql.DB) string {
	if sqlDB != nil {
		return "postgres"
	}
	return "memory"
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
