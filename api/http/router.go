package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobmatch/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	upload *handlers.UploadHandler,
	analyze *handlers.AnalyzeHandler,
	chat *handlers.ChatHandler,
	jobs *handlers.JobsHandler,
	match *handlers.MatchHandler,
	health *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	// Resume pipeline
	api.Post("/upload", upload.Upload)
	api.Post("/analyze", analyze.Analyze)

	// Job catalog and matching
	api.Post("/jobs", jobs.Create)
	api.Get("/jobs", jobs.List)
	api.Post("/match", match.Match)

	// Assistant relay
	api.Post("/chat", chat.Chat)
}
