package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/jeopardy/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	ctrl, view, broker := deps.Controller, deps.View, deps.Broker

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", handleSwaggerUI())
	r.Mount("/healthz", health.NewHandler(logger, deps.Checks).Routes())
	r.Get("/ws/events", handleWSEvents(logger, broker, view))

	r.Route("/api/game", func(r chi.Router) {
		r.Get("/state", handleGameState(ctrl, view))
		r.Get("/events", handleEvents(logger, broker, view))
		r.Post("/start", handleStartGame(ctrl, view))
		r.Post("/active", handleActiveArea(ctrl, view))
		r.With(clueMiddleware).Post("/clues/{categoryID}/{clueID}", handleClue(ctrl, view))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
