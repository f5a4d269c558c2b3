package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/internal/api/presenters"
	"github.com/jamshiddins/vendbot/pkg/allocation"
	"github.com/jamshiddins/vendbot/pkg/stock"
)

type (
	StockHandler interface {
		CreateIngredientType(c *fiber.Ctx) error
		UpdateIngredientType(c *fiber.Ctx) error
		GetSummary(c *fiber.Ctx) error
		GetStatus(c *fiber.Ctx) error
		ReceiveStock(c *fiber.Ctx) error
		AdjustInventory(c *fiber.Ctx) error
	}

	stockHandler struct {
		stockService      stock.StockService
		allocationService allocation.AllocationService
		validator         *validator.Validate
	}
)

func NewStockHandler(stockService stock.StockService, allocationService allocation.AllocationService, validator *validator.Validate) StockHandler {
	return &stockHandler{
		stockService:      stockService,
		allocationService: allocationService,
		validator:         validator,
	}
}

func (h *stockHandler) CreateIngredientType(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.CreateIngredientTypeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	res, err := h.stockService.CreateIngredientType(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateIngredient)
}

func (h *stockHandler) UpdateIngredientType(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req := new(domain.UpdateIngredientTypeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	if err := h.stockService.UpdateIngredientType(c.Context(), uint(id), *req, actor); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateIngredient)
}

func (h *stockHandler) GetSummary(c *fiber.Ctx) error {
	res, err := h.stockService.Summary(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStock, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStock)
}

func (h *stockHandler) GetStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.stockService.Status(c.Context(), uint(id))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStock, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStock)
}

func (h *stockHandler) ReceiveStock(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.ReceiveStockRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReceiveStock, err)
	}

	res, err := h.allocationService.ReceiveStock(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReceiveStock, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessReceiveStock)
}

func (h *stockHandler) AdjustInventory(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.AdjustInventoryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdjustStock, err)
	}

	res, err := h.allocationService.AdjustInventory(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdjustStock, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAdjustStock)
}
