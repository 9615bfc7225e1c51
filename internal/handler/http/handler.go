// Package http exposes the JSON-over-HTTP surface. Every endpoint answers
// with the same envelope: {success, msg} under HTTP 200 (success), 404
// (validation or not-found), or 503 (backend failure).
package http

import (
	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
