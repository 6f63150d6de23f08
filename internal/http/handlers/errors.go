package handlers

import (
	"errors"

	"github.com/creator-marketplace/backend/internal/http/dto"
	"github.com/creator-marketplace/backend/internal/middleware"
	"github.com/creator-marketplace/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:     msg,
		RequestID: middleware.GetRequestID(c),
	})
}

// writeError maps service errors to HTTP responses.
func writeError(c *fiber.Ctx, log *zap.Logger, err error) error {
	resp := dto.ErrorResponse{Error: err.Error(), RequestID: middleware.GetRequestID(c)}

	var verr *services.ValidationError
	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = fiber.StatusUnprocessableEntity
		resp.Error = "draft is not publishable"
		resp.Fields = verr.Errors
	case errors.Is(err, services.ErrDraftNotFound), errors.Is(err, services.ErrCampaignNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrDraftAlreadyPublished), errors.Is(err, services.ErrPublishInProgress),
		errors.Is(err, services.ErrInvalidTransition):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrPublishNotAllowed):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrSessionClosed):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrPublishFailed):
		status = fiber.StatusBadGateway
		resp.Error = services.ErrPublishFailed.Error()
	default:
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		resp.Error = "internal error"
	}

	return c.Status(status).JSON(resp)
}
