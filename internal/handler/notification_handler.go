package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/service"
	"github.com/docuvia/docuvia-api/internal/utils"
)

// NotificationHandler manages the notification ledger endpoints.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register wires the notification routes.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Post("/", h.create)
	router.Get("/by-user/:id/unread", h.listUnread)
	router.Get("/by-user/:id", h.listByReceiver)
	router.Get("/:id", h.get)
	router.Put("/:id/mark-read", h.markRead)
	router.Delete("/:id", h.delete)
}

func (h *NotificationHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateNotificationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	notification, err := h.service.Create(requestContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReceiverNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "receiver not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid notification payload")
		default:
			h.logger.Error().Err(err).Msg("failed to create notification")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "notification created", fiber.Map{"id": notification.ID})
}

func (h *NotificationHandler) listByReceiver(c *fiber.Ctx) error {
	receiverID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	notifications, err := h.service.ListByReceiver(requestContext(c), receiverID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list notifications")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "notifications", notifications)
}

func (h *NotificationHandler) listUnread(c *fiber.Ctx) error {
	receiverID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	notifications, err := h.service.ListUnreadByReceiver(requestContext(c), receiverID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list unread notifications")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "unread notifications", notifications)
}

func (h *NotificationHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	notification, err := h.service.Get(requestContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "notification not found")
		}
		h.logger.Error().Err(err).Msg("failed to fetch notification")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "notification", notification)
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	notification, err := h.service.MarkRead(requestContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "notification not found")
		}
		h.logger.Error().Err(err).Msg("failed to mark notification read")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "notification marked read", notification)
}

func (h *NotificationHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	if err := h.service.Delete(requestContext(c), id); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "notification not found")
		}
		h.logger.Error().Err(err).Msg("failed to delete notification")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "notification deleted", nil)
}
