package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/internal/api/presenters"
	"github.com/jamshiddins/vendbot/pkg/allocation"
	"github.com/jamshiddins/vendbot/pkg/hopper"
)

type (
	HopperHandler interface {
		CreateHopper(c *fiber.Ctx) error
		GetHopper(c *fiber.Ctx) error
		GetHoppers(c *fiber.Ctx) error
		FillHopper(c *fiber.Ctx) error
		InstallHopper(c *fiber.Ctx) error
		RemoveHopper(c *fiber.Ctx) error
		SendToCleaning(c *fiber.Ctx) error
		CleanHopper(c *fiber.Ctx) error
		IssueHopper(c *fiber.Ctx) error
		ReturnHopper(c *fiber.Ctx) error
	}

	hopperHandler struct {
		hopperService     hopper.HopperService
		allocationService allocation.AllocationService
		validator         *validator.Validate
	}
)

func NewHopperHandler(hopperService hopper.HopperService, allocationService allocation.AllocationService, validator *validator.Validate) HopperHandler {
	return &hopperHandler{
		hopperService:     hopperService,
		allocationService: allocationService,
		validator:         validator,
	}
}

func (h *hopperHandler) CreateHopper(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.CreateHopperRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateHopper, err)
	}

	res, err := h.hopperService.Create(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateHopper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateHopper)
}

func (h *hopperHandler) GetHopper(c *fiber.Ctx) error {
	code := c.Params("code")

	res, err := h.hopperService.GetByCode(c.Context(), code)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHopper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHopper)
}

func (h *hopperHandler) GetHoppers(c *fiber.Ctx) error {
	status := c.Query("status")

	res, err := h.hopperService.List(c.Context(), status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHopper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHopper)
}

func (h *hopperHandler) FillHopper(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.FillHopperRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFillHopper, err)
	}

	res, err := h.allocationService.FillHopper(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFillHopper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessFillHopper)
}

func (h *hopperHandler) InstallHopper(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.InstallHopperRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInstallHopper, err)
	}

	res, err := h.allocationService.InstallHopper(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInstallHopper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessInstallHopper)
}

func (h *hopperHandler) RemoveHopper(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.RemoveHopperRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveHopper, err)
	}

	res, err := h.allocationService.RemoveHopper(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveHopper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRemoveHopper)
}

func (h *hopperHandler) SendToCleaning(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.allocationService.SendHopperToCleaning(c.Context(), uint(id), actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCleanHopper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCleanHopper)
}

func (h *hopperHandler) CleanHopper(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.allocationService.CleanHopper(c.Context(), uint(id), actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCleanHopper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCleanHopper)
}

func (h *hopperHandler) IssueHopper(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.IssueHopperRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIssueHopper, err)
	}

	res, err := h.allocationService.IssueHopper(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIssueHopper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessIssueHopper)
}

func (h *hopperHandler) ReturnHopper(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.ReturnHopperRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReturnHopper, err)
	}

	res, err := h.allocationService.ReturnHopper(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReturnHopper, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessReturnHopper)
}
