package bootstrap

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tgcs/experience-api/internal/config"
	"github.com/tgcs/experience-api/internal/infra/blob"
	"github.com/tgcs/experience-api/internal/infra/cache"
	"github.com/tgcs/experience-api/internal/infra/db"
	"github.com/tgcs/experience-api/internal/infra/httpclient"
	"github.com/tgcs/experience-api/internal/infra/logger"
	"github.com/tgcs/experience-api/internal/infra/mailer"
	mq "github.com/tgcs/experience-api/internal/infra/queue"
	"github.com/tgcs/experience-api/internal/modules/handler"
	"github.com/tgcs/experience-api/internal/modules/model"
	"github.com/tgcs/experience-api/internal/modules/repo"
	"github.com/tgcs/experience-api/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			if err := d.AutoMigrate(model.All()...); err != nil {
				return nil, err
			}
		}

		if err := EnsureAdminsExist(context.Background(), d, cfg, log); err != nil {
			return nil, err
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.Dial(context.Background(), cfg)
	})
	do.Provide(inj, func(i *do.Injector) (*cache.SessionStore, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ttl := time.Duration(cfg.Auth.SessionTTLSec) * time.Second
		return cache.NewSessionStore(do.MustInvoke[*redis.Client](i), cfg.Redis.KeyPrefix, ttl), nil
	})

	// RabbitMQ
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn, err := mq.Dial(cfg)
		if err != nil {
			return nil, err
		}
		if err := mq.DeclareMailTopology(conn, cfg); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	})
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn, err := do.Invoke[*amqp.Connection](i)
		if err != nil {
			return nil, err
		}
		return mq.NewPublisher(conn, do.MustInvoke[*zap.Logger](i), cfg)
	})
	// Without a broker the API still serves; only /create-user is disabled.
	do.Provide(inj, func(i *do.Injector) (service.MailPublisher, error) {
		pub, err := do.Invoke[*mq.Publisher](i)
		if err != nil {
			do.MustInvoke[*zap.Logger](i).Warn("rabbitmq unavailable, access token mail disabled", zap.Error(err))
			return nil, nil
		}
		return pub, nil
	})
	do.Provide(inj, func(i *do.Injector) (*mailer.Mailer, error) {
		return mailer.New(do.MustInvoke[*config.Config](i), do.MustInvoke[*zap.Logger](i)), nil
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (service.SnapshotArchive, error) {
		a, err := blob.New(context.Background(), do.MustInvoke[*config.Config](i))
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, nil
		}
		return a, nil
	})

	// HTTP client
	do.Provide(inj, func(i *do.Injector) (*httpclient.Client, error) {
		return httpclient.New(do.MustInvoke[*config.Config](i), do.MustInvoke[*zap.Logger](i)), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.Querier, error) {
		return repo.NewQuerier(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ExperienceRepo, error) {
		return repo.NewExperienceRepo(do.MustInvoke[repo.Querier](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CompetitionRepo, error) {
		return repo.NewCompetitionRepo(do.MustInvoke[repo.Querier](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProgramRepo, error) {
		return repo.NewProgramRepo(do.MustInvoke[repo.Querier](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.SponsorRepo, error) {
		return repo.NewSponsorRepo(do.MustInvoke[repo.Querier](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.FeedbackRepo, error) {
		return repo.NewFeedbackRepo(do.MustInvoke[repo.Querier](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TableRepo, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return repo.NewTableRepo(do.MustInvoke[*gorm.DB](i), repo.TableKeys(cfg.Tables)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.LoginRepo, error) {
		return repo.NewLoginRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ScraperRepo, error) {
		return repo.NewScraperRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.CompetitionService, error) {
		return service.NewCompetitionService(do.MustInvoke[repo.CompetitionRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProgramService, error) {
		return service.NewProgramService(do.MustInvoke[repo.ProgramRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ExperienceService, error) {
		return service.NewExperienceService(
			do.MustInvoke[repo.ExperienceRepo](i),
			do.MustInvoke[service.CompetitionService](i),
			do.MustInvoke[service.ProgramService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.SponsorService, error) {
		return service.NewSponsorService(do.MustInvoke[repo.SponsorRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.FeedbackService, error) {
		return service.NewFeedbackService(do.MustInvoke[repo.FeedbackRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TableService, error) {
		return service.NewTableService(
			do.MustInvoke[repo.TableRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.IDTokenVerifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewGoogleVerifier(
			context.Background(),
			cfg.Auth.GoogleClientID,
			cfg.Auth.GoogleCertsURL,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		return service.NewAuthService(
			do.MustInvoke[repo.LoginRepo](i),
			do.MustInvoke[*cache.SessionStore](i),
			do.MustInvoke[service.IDTokenVerifier](i),
			do.MustInvoke[service.MailPublisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ScraperService, error) {
		return service.NewScraperService(
			do.MustInvoke[repo.ScraperRepo](i),
			do.MustInvoke[*httpclient.Client](i),
			do.MustInvoke[service.SnapshotArchive](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.RecommendationService, error) {
		return service.NewRecommendationService(do.MustInvoke[service.ExperienceService](i)), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.CatalogueHandler, error) {
		return handler.NewCatalogueHandler(
			do.MustInvoke[service.ExperienceService](i),
			do.MustInvoke[service.SponsorService](i),
			do.MustInvoke[service.FeedbackService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TableHandler, error) {
		return handler.NewTableHandler(do.MustInvoke[service.TableService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(
			do.MustInvoke[service.AuthService](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ScraperHandler, error) {
		return handler.NewScraperHandler(do.MustInvoke[service.ScraperService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.RecommendationHandler, error) {
		return handler.NewRecommendationHandler(do.MustInvoke[service.RecommendationService](i)), nil
	})
	return inj
}
