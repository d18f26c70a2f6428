package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/service"
	"github.com/docuvia/docuvia-api/internal/utils"
)

// AuditHandler exposes the append-only audit trail.
type AuditHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(service service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register wires the audit routes. There is no update or delete route.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Post("/", h.record)
	router.Get("/", h.list)
	router.Get("/by-user/:id", h.listByActor)
	router.Get("/:id", h.get)
}

func (h *AuditHandler) record(c *fiber.Ctx) error {
	var payload dto.RecordAuditRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	action, err := h.service.Record(requestContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid audit payload")
		default:
			h.logger.Error().Err(err).Msg("failed to record audit action")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "action recorded", fiber.Map{"id": action.ID})
}

func (h *AuditHandler) list(c *fiber.Ctx) error {
	actions, err := h.service.List(requestContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list audit actions")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "audit actions", actions)
}

func (h *AuditHandler) listByActor(c *fiber.Ctx) error {
	actorID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	actions, err := h.service.ListByActor(requestContext(c), actorID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list audit actions by actor")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "audit actions", actions)
}

func (h *AuditHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid audit id")
	}

	action, err := h.service.Get(requestContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrAuditNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "audit record not found")
		}
		h.logger.Error().Err(err).Msg("failed to fetch audit record")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "audit record", action)
}
