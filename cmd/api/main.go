package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hackpoint/hackpoint-api/internal/config"
	"github.com/hackpoint/hackpoint-api/internal/database"
	"github.com/hackpoint/hackpoint-api/internal/handler"
	"github.com/hackpoint/hackpoint-api/internal/middleware"
	"github.com/hackpoint/hackpoint-api/internal/repository"
	"github.com/hackpoint/hackpoint-api/internal/repository/memory"
	"github.com/hackpoint/hackpoint-api/internal/router"
	"github.com/hackpoint/hackpoint-api/internal/service"
)

// repositories bundles the storage backends wired at startup.
type repositories struct {
	hackathons   repository.HackathonRepository
	awards       repository.AwardRepository
	criteria     repository.CriterionRepository
	invitations  repository.InvitationRepository
	participants repository.ParticipantRepository
	judges       repository.JudgeRepository
	scores       repository.ScoreRepository
	users        repository.UserRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	notifier := service.NewEventNotifier(redisClient, natsConn, cfg.EventChannelBase, logger)
	rooms := service.NewEventRoomProvisioner(natsConn, cfg.EventChannelBase, logger)

	hackathonService := service.NewHackathonService(repos.hackathons, rooms, validate, logger)
	invitationService := service.NewInvitationService(repos.invitations, repos.hackathons, repos.participants, repos.users, notifier, validate, logger)
	participantService := service.NewParticipantService(repos.participants, repos.hackathons, validate, logger)
	scoringService := service.NewScoringService(repos.scores, repos.criteria, repos.participants, repos.hackathons, redisClient, cfg.ScoreboardCacheTTL, logger)
	judgingService := service.NewJudgingService(repos.judges, repos.scores, repos.criteria, repos.hackathons, scoringService, validate, logger)
	awardService := service.NewAwardService(repos.awards, repos.hackathons, repos.participants, scoringService, notifier, validate, logger)

	hackathonHandler := handler.NewHackathonHandler(hackathonService, logger)
	invitationHandler := handler.NewInvitationHandler(invitationService, logger)
	participantHandler := handler.NewParticipantHandler(participantService, logger)
	judgingHandler := handler.NewJudgingHandler(judgingService, logger)
	scoreboardHandler := handler.NewScoreboardHandler(scoringService, logger)
	awardHandler := handler.NewAwardHandler(awardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:           &logger,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})
	router.Register(app, cfg, router.Dependencies{
		HackathonHandler:   hackathonHandler,
		InvitationHandler:  invitationHandler,
		ParticipantHandler: participantHandler,
		JudgingHandler:     judgingHandler,
		ScoreboardHandler:  scoreboardHandler,
		AwardHandler:       awardHandler,
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildRepositories(cfg config.Config) (repositories, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		store := memory.NewStore()
		return repositories{
			hackathons:   memory.NewHackathonRepository(store),
			awards:       memory.NewAwardRepository(store),
			criteria:     memory.NewCriterionRepository(store),
			invitations:  memory.NewInvitationRepository(store),
			participants: memory.NewParticipantRepository(store),
			judges:       memory.NewJudgeRepository(store),
			scores:       memory.NewScoreRepository(store),
			users:        memory.NewUserRepository(store),
		}, nil
	}

	db, err := connectDatabase(cfg)
	if err != nil {
		return repositories{}, err
	}

	if err := database.Migrate(db); err != nil {
		return repositories{}, err
	}

	return repositories{
		hackathons:   repository.NewHackathonRepository(db),
		awards:       repository.NewAwardRepository(db),
		criteria:     repository.NewCriterionRepository(db),
		invitations:  repository.NewInvitationRepository(db),
		participants: repository.NewParticipantRepository(db),
		judges:       repository.NewJudgeRepository(db),
		scores:       repository.NewScoreRepository(db),
		users:        repository.NewUserRepository(db),
	}, nil
}

func connectDatabase(cfg config.Config) (*gorm.DB, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		return database.ConnectPostgres(cfg.DatabaseURL)
	default:
		return database.ConnectSQLite(cfg.DatabaseURL)
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
