package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hackpoint/hackpoint-api/internal/config"
	"github.com/hackpoint/hackpoint-api/internal/handler"
	"github.com/hackpoint/hackpoint-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	HackathonHandler   *handler.HackathonHandler
	InvitationHandler  *handler.InvitationHandler
	ParticipantHandler *handler.ParticipantHandler
	JudgingHandler     *handler.JudgingHandler
	ScoreboardHandler  *handler.ScoreboardHandler
	AwardHandler       *handler.AwardHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	hackathons := api.Group("/hackathons", jwtMiddleware)
	if deps.HackathonHandler != nil {
		deps.HackathonHandler.Register(hackathons)
	}
	if deps.ScoreboardHandler != nil {
		deps.ScoreboardHandler.Register(hackathons)
	}

	if deps.InvitationHandler != nil {
		invitations := api.Group("/invitations", jwtMiddleware)
		deps.InvitationHandler.Register(invitations)
	}

	if deps.ParticipantHandler != nil {
		participants := api.Group("/participants", jwtMiddleware)
		deps.ParticipantHandler.Register(participants)
	}

	if deps.JudgingHandler != nil {
		judging := api.Group("/judging", jwtMiddleware)
		deps.JudgingHandler.Register(judging)
	}

	if deps.AwardHandler != nil {
		awards := api.Group("/awards", jwtMiddleware)
		deps.AwardHandler.Register(hackathons, awards)
	}
}
