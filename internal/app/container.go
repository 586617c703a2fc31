package app

import (
	"context"
	"errors"
	"time"

	"talent-hub/internal/config"
	"talent-hub/internal/database"
	"talent-hub/internal/database/migration"
	dbpostgres "talent-hub/internal/database/postgres"
	"talent-hub/internal/infrastructure/cache"
	"talent-hub/internal/infrastructure/export"
	"talent-hub/internal/infrastructure/resume"
	"talent-hub/internal/pkg/jwt"
	"talent-hub/internal/repository"
	"talent-hub/internal/usecase"
	"talent-hub/internal/ws"

	"github.com/sirupsen/logrus"
)

// Container owns the long-lived dependencies of the process.
type Container struct {
	Config config.Config
	Logger *logrus.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Tokens jwt.Service

	Jobs         usecase.JobUsecase
	Applications usecase.ApplicationUsecase
	Profiles     usecase.ProfileUsecase
	Drafts       usecase.DraftUsecase
	Resumes      usecase.ResumeUsecase
	Exports      usecase.ExportUsecase
}

func NewContainer(cfg config.Config, logger *logrus.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		runner := migration.Runner{Logger: logger.WithField("component", "migration")}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	redisCache := cache.NewRedis(ctx, cfg.Redis, logger.WithField("component", "redis"))
	hub := ws.NewHub(logger.WithField("component", "ws"))

	var extractor usecase.Extractor
	if cfg.Resume.AnthropicAPIKey != "" {
		extractor = resume.NewClaude(cfg.Resume, logger.WithField("component", "resume"))
	} else {
		logger.Warn("ANTHROPIC_API_KEY not set, resume extraction disabled")
	}

	jobRepo := repository.NewPostgresJobRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)

	ucLogger := logger.WithField("component", "usecase")

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,
		Tokens: jwt.NewHMACService(cfg.JWT.Secret, 0),

		Jobs: usecase.NewJobUsecase(jobRepo, redisCache, cfg.Redis.CacheTTL, ucLogger),
		Applications: usecase.NewApplicationUsecase(usecase.ApplicationDeps{
			Applications:    appRepo,
			Jobs:            jobRepo,
			Profiles:        profileRepo,
			Drafts:          redisCache,
			Events:          hub,
			Logger:          ucLogger,
			BulkConcurrency: cfg.Workflow.BulkConcurrency,
		}),
		Profiles: usecase.NewProfileUsecase(profileRepo, ucLogger),
		Drafts:   usecase.NewDraftUsecase(redisCache, cfg.Redis.DraftTTL, ucLogger),
		Resumes:  usecase.NewResumeUsecase(extractor, jobRepo, cfg.Resume.MaxBytes, ucLogger),
		Exports:  usecase.NewExportUsecase(jobRepo, appRepo, export.NewExcel(), ucLogger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
