package handlers

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/internal/api/presenters"
	"github.com/jamshiddins/vendbot/pkg/operation"
)

type (
	OperationHandler interface {
		GetHistory(c *fiber.Ctx) error
		AttachPhoto(c *fiber.Ctx) error
	}

	operationHandler struct {
		operationService operation.OperationService
		validator        *validator.Validate
	}
)

func NewOperationHandler(operationService operation.OperationService, validator *validator.Validate) OperationHandler {
	return &operationHandler{
		operationService: operationService,
		validator:        validator,
	}
}

func (h *operationHandler) GetHistory(c *fiber.Ctx) error {
	filter := domain.HistoryFilter{
		OperationType: c.Query("operation_type"),
		EntityType:    c.Query("entity_type"),
	}

	if v, err := strconv.Atoi(c.Query("user_id", "0")); err == nil {
		filter.UserID = uint(v)
	}
	if v, err := strconv.Atoi(c.Query("entity_id", "0")); err == nil {
		filter.EntityID = uint(v)
	}
	if v, err := strconv.Atoi(c.Query("limit", "0")); err == nil {
		filter.Limit = v
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
		filter.To = &t
	}

	res, err := h.operationService.History(c.Context(), filter)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHistory)
}

func (h *operationHandler) AttachPhoto(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.AttachPhotoRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAttachPhoto, err)
	}

	if err := h.operationService.AttachPhoto(c.Context(), *req, actor); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAttachPhoto, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessAttachPhoto)
}
