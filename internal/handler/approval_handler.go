package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/service"
	"github.com/docuvia/docuvia-api/internal/utils"
)

// ApprovalHandler manages the approval workflow endpoints.
type ApprovalHandler struct {
	service service.ApprovalService
	logger  zerolog.Logger
}

// NewApprovalHandler constructs the handler.
func NewApprovalHandler(service service.ApprovalService, logger zerolog.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		service: service,
		logger:  logger.With().Str("component", "approval_handler").Logger(),
	}
}

// Register wires the approval routes.
func (h *ApprovalHandler) Register(router fiber.Router) {
	router.Post("/request", h.request)
	router.Get("/pending", h.listPending)
	router.Put("/:id/approve", h.approve)
	router.Put("/:id/reject", h.reject)
	router.Get("/:id", h.get)
}

func (h *ApprovalHandler) request(c *fiber.Ctx) error {
	var payload dto.RequestApprovalRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.Request(requestContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "document not found")
		case errors.Is(err, service.ErrApproverNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "approver not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid approval payload")
		default:
			h.logger.Error().Err(err).Msg("failed to request approval")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "approval requested", fiber.Map{"id": record.ID})
}

func (h *ApprovalHandler) approve(c *fiber.Ctx) error {
	return h.decide(c, h.service.Approve, "document approved")
}

func (h *ApprovalHandler) reject(c *fiber.Ctx) error {
	return h.decide(c, h.service.Reject, "document rejected")
}

func (h *ApprovalHandler) decide(c *fiber.Ctx, decision func(ctx context.Context, id uint, payload dto.ApprovalDecisionRequest) (dto.ApprovalResponse, error), message string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid approval id")
	}

	var payload dto.ApprovalDecisionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := decision(requestContext(c), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApprovalNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "approval record not found")
		case errors.Is(err, service.ErrApprovalFinalized):
			return utils.SendError(c, fiber.StatusConflict, "approval record already finalized")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid decision payload")
		default:
			h.logger.Error().Err(err).Msg("failed to finalize approval")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccess(c, message, record)
}

func (h *ApprovalHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid approval id")
	}

	record, err := h.service.Get(requestContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrApprovalNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "approval record not found")
		}
		h.logger.Error().Err(err).Msg("failed to fetch approval record")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "approval record", record)
}

func (h *ApprovalHandler) listPending(c *fiber.Ctx) error {
	records, err := h.service.ListPending(requestContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list pending approvals")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "pending approvals", records)
}
