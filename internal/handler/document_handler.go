package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/docuvia/docuvia-api/internal/dto"
	"github.com/docuvia/docuvia-api/internal/middleware"
	"github.com/docuvia/docuvia-api/internal/service"
	"github.com/docuvia/docuvia-api/internal/utils"
)

// DocumentHandler manages document metadata endpoints.
type DocumentHandler struct {
	service service.DocumentService
	logger  zerolog.Logger
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service service.DocumentService, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger.With().Str("component", "document_handler").Logger(),
	}
}

// Register wires the document routes.
func (h *DocumentHandler) Register(router fiber.Router) {
	router.Post("/", h.create)
	router.Get("/", h.list)
	router.Get("/by-user/:id", h.listByOwner)
	router.Get("/:id", h.get)
	router.Post("/:id/versions", h.addVersion)
	router.Delete("/:id", h.delete)
}

func (h *DocumentHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateDocumentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	doc, err := h.service.Create(requestContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOwnerNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "owner not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid document payload")
		default:
			h.logger.Error().Err(err).Msg("failed to create document")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "document created", fiber.Map{"id": doc.ID})
}

// list returns all documents, or only the caller's when the identity header
// is present.
func (h *DocumentHandler) list(c *fiber.Ctx) error {
	docs, err := h.service.List(requestContext(c), middleware.CallerID(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list documents")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "documents", docs)
}

func (h *DocumentHandler) listByOwner(c *fiber.Ctx) error {
	ownerID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	docs, err := h.service.ListByOwner(requestContext(c), ownerID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list documents by owner")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "documents", docs)
}

func (h *DocumentHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid document id")
	}

	doc, err := h.service.Get(requestContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "document not found")
		}
		h.logger.Error().Err(err).Msg("failed to fetch document")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "document", doc)
}

func (h *DocumentHandler) addVersion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid document id")
	}

	var payload dto.AddVersionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	version, err := h.service.AddVersion(requestContext(c), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "document not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid version payload")
		default:
			h.logger.Error().Err(err).Msg("failed to append version")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "version added", fiber.Map{"id": version.ID})
}

func (h *DocumentHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid document id")
	}

	if err := h.service.Delete(requestContext(c), id); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "document not found")
		}
		h.logger.Error().Err(err).Msg("failed to delete document")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "document deleted", nil)
}
