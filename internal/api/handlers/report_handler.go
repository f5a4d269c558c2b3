package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/internal/api/presenters"
	"github.com/jamshiddins/vendbot/pkg/report"
)

type (
	ReportHandler interface {
		StockReport(c *fiber.Ctx) error
		HistoryReport(c *fiber.Ctx) error
	}

	reportHandler struct {
		reportService report.ReportService
	}
)

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandler{
		reportService: reportService,
	}
}

func (h *reportHandler) StockReport(c *fiber.Ctx) error {
	actor := actorFromLocals(c)

	res, err := h.reportService.StockReport(c.Context(), actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedStockReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessStockReport)
}

func (h *reportHandler) HistoryReport(c *fiber.Ctx) error {
	actor := actorFromLocals(c)

	filter := domain.HistoryFilter{
		OperationType: c.Query("operation_type"),
		EntityType:    c.Query("entity_type"),
	}
	if v, err := strconv.Atoi(c.Query("user_id", "0")); err == nil {
		filter.UserID = uint(v)
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

	res, err := h.reportService.HistoryReport(c.Context(), filter, actor)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedHistoryReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessHistoryReport)
}
