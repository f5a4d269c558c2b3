package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/internal/api/presenters"
	"github.com/jamshiddins/vendbot/pkg/allocation"
	"github.com/jamshiddins/vendbot/pkg/machine"
)

type (
	MachineHandler interface {
		CreateMachine(c *fiber.Ctx) error
		GetMachine(c *fiber.Ctx) error
		GetMachines(c *fiber.Ctx) error
		ChangeStatus(c *fiber.Ctx) error
		MarkService(c *fiber.Ctx) error
		AssignOperator(c *fiber.Ctx) error
	}

	machineHandler struct {
		machineService    machine.MachineService
		allocationService allocation.AllocationService
		validator         *validator.Validate
	}
)

func NewMachineHandler(machineService machine.MachineService, allocationService allocation.AllocationService, validator *validator.Validate) MachineHandler {
	return &machineHandler{
		machineService:    machineService,
		allocationService: allocationService,
		validator:         validator,
	}
}

func (h *machineHandler) CreateMachine(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.CreateMachineRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMachine, err)
	}

	res, err := h.machineService.Create(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMachine, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMachine)
}

func (h *machineHandler) GetMachine(c *fiber.Ctx) error {
	code := c.Params("code")

	res, err := h.machineService.GetByCode(c.Context(), code)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMachines, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMachines)
}

func (h *machineHandler) GetMachines(c *fiber.Ctx) error {
	status := c.Query("status")

	res, err := h.machineService.List(c.Context(), status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMachines, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMachines)
}

func (h *machineHandler) ChangeStatus(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.ChangeMachineStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMachineStatus, err)
	}

	res, err := h.allocationService.ChangeMachineStatus(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMachineStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessMachineStatus)
}

func (h *machineHandler) MarkService(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.MarkMachineServiceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMachineService, err)
	}

	res, err := h.allocationService.MarkMachineService(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMachineService, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessMachineService)
}

func (h *machineHandler) AssignOperator(c *fiber.Ctx) error {
	actor := actorFromLocals(c)
	req := new(domain.AssignMachineOperatorRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAssignOperator, err)
	}

	res, err := h.allocationService.AssignMachineOperator(c.Context(), *req, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAssignOperator, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAssignOperator)
}
