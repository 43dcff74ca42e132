package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/park-seva/helpcenter-service/internal/api/http/handlers"
	"github.com/park-seva/helpcenter-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health             *handlers.HealthHandler
	Chat               *handlers.ChatHandler
	Operator           *handlers.OperatorHandler
	OperatorMiddleware *auth.OperatorMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/auth/operator/login", cfg.Operator.Login)

	chat := app.Group("/api/helpcenter")
	chat.Post("/messages", cfg.Chat.SendMessage)
	chat.Get("/transcript", cfg.Chat.Transcript)
	chat.Get("/suggestions", cfg.Chat.Suggestions)
	chat.Post("/mode", cfg.Chat.SetMode)
	chat.Get("/notification", cfg.Chat.Notification)
	chat.Post("/notification/ack", cfg.Chat.AcknowledgeNotification)
	chat.Post("/notification/dismiss", cfg.Chat.DismissNotification)
	chat.Post("/survey", cfg.Chat.SubmitSurvey)

	operator := app.Group("/api/operator", cfg.OperatorMiddleware.Handle)
	operator.Get("/tickets", cfg.Operator.ListTickets)
	operator.Get("/tickets/:id", cfg.Operator.GetTicket)
	operator.Post("/tickets/:id/response", cfg.Operator.Respond)
	operator.Post("/tickets/:id/call-request", cfg.Operator.RequestCall)
	operator.Post("/tickets/:id/close", cfg.Operator.Close)
	operator.Post("/tickets/:id/notes", cfg.Operator.AddNote)
}
