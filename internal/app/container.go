package app

import (
	"context"
	"log"
	"time"

	"skillboard/internal/config"
	"skillboard/internal/database"
	"skillboard/internal/database/migration"
	dbpostgres "skillboard/internal/database/postgres"
	"skillboard/internal/infrastructure/cache"
	"skillboard/internal/pkg/jwt"
	"skillboard/internal/repository"
	"skillboard/internal/usecase"
)

// Container owns the process-wide dependencies and the wired usecases.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service

	Auth          usecase.AuthUsecase
	Users         usecase.UserUsecase
	UserSearch    usecase.UserSearchUsecase
	Jobs          usecase.JobUsecase
	Skills        usecase.SkillUsecase
	Campaigns     usecase.CampaignUsecase
	Evaluations   usecase.EvaluationUsecase
	Habilitations usecase.HabilitationUsecase
	Reporting     usecase.ReportingUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := migration.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := repository.NewPostgresUserRepository(db)
	userSearchRepo := repository.NewPostgresUserSearchRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	campaignRepo := repository.NewPostgresCampaignRepository(db)
	evaluationRepo := repository.NewPostgresEvaluationRepository(db)
	skillLevelRepo := repository.NewPostgresSkillLevelRepository(db)
	habilitationRepo := repository.NewPostgresHabilitationRepository(db)

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisCache,
		JWT:    jwtSvc,

		Auth:       usecase.NewAuthUsecase(userRepo, jwtSvc),
		Users:      usecase.NewUserUsecase(userRepo, jobRepo),
		UserSearch: usecase.NewUserSearchUsecase(userSearchRepo),
		Jobs:       usecase.NewJobUsecase(jobRepo),
		Skills:     usecase.NewSkillUsecase(skillRepo, jobRepo),
		Campaigns:  usecase.NewCampaignUsecase(campaignRepo),
		Evaluations: usecase.NewEvaluationUsecase(
			db, evaluationRepo, skillLevelRepo, userRepo, skillRepo, campaignRepo, redisCache,
		),
		Habilitations: usecase.NewHabilitationUsecase(habilitationRepo, userRepo, jobRepo),
		Reporting: usecase.NewReportingUsecase(
			userRepo, jobRepo, skillLevelRepo, evaluationRepo, campaignRepo, redisCache, cfg.Redis.TTL,
		),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
