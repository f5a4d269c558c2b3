package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/internal/utils/storage"
	"github.com/jamshiddins/vendbot/pkg/operation"
	"github.com/jamshiddins/vendbot/pkg/stock"
)

const (
	reportSheet     = "Sheet1"
	presignValidity = 24 * time.Hour

	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type (
	ReportService interface {
		StockReport(ctx context.Context, actor domain.Actor) (domain.ReportResponse, error)
		HistoryReport(ctx context.Context, filter domain.HistoryFilter, actor domain.Actor) (domain.ReportResponse, error)
	}

	reportService struct {
		stockRepository     stock.StockRepository
		operationRepository operation.OperationRepository
		awsS3               storage.AwsS3
	}
)

func NewReportService(stockRepository stock.StockRepository, operationRepository operation.OperationRepository, awsS3 storage.AwsS3) ReportService {
	return &reportService{
		stockRepository:     stockRepository,
		operationRepository: operationRepository,
		awsS3:               awsS3,
	}
}

// StockReport exports the current stock position of every ingredient type
// to an xlsx workbook and returns a presigned link to the uploaded file.
func (s *reportService) StockReport(ctx context.Context, actor domain.Actor) (domain.ReportResponse, error) {
	if !actor.Can(domain.CapabilityAdmin, domain.CapabilityWarehouse) {
		return domain.ReportResponse{}, domain.ErrUserNotAllowed
	}

	entries, err := s.stockRepository.ListEntries(ctx)
	if err != nil {
		return domain.ReportResponse{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Ingredient", "Category", "Unit", "Quantity", "Reserved", "Available", "Min Stock", "Reorder At", "Level", "Last Restock"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(reportSheet, cell, h)
	}
	f.SetColWidth(reportSheet, "A", "A", 28)
	f.SetColWidth(reportSheet, "J", "J", 20)

	for row, entry := range entries {
		lastRestock := ""
		if entry.LastRestockAt != nil {
			lastRestock = entry.LastRestockAt.Format("2006-01-02 15:04")
		}
		values := []interface{}{
			entry.IngredientType.DisplayName(),
			entry.IngredientType.Category,
			entry.IngredientType.Unit,
			entry.Quantity,
			entry.Reserved,
			entry.Available(),
			entry.IngredientType.MinStock,
			entry.IngredientType.ReorderAt,
			string(entry.Level()),
			lastRestock,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(reportSheet, cell, v)
		}
	}

	return s.upload(ctx, f, "stock")
}

// HistoryReport exports operation records matching the filter, newest first.
func (s *reportService) HistoryReport(ctx context.Context, filter domain.HistoryFilter, actor domain.Actor) (domain.ReportResponse, error) {
	if !actor.Can(domain.CapabilityAdmin, domain.CapabilityWarehouse) {
		return domain.ReportResponse{}, domain.ErrUserNotAllowed
	}

	ops, err := s.operationRepository.List(ctx, filter)
	if err != nil {
		return domain.ReportResponse{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"ID", "Time", "User ID", "Type", "Entity", "Entity ID", "Success", "Description", "Error"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(reportSheet, cell, h)
	}
	f.SetColWidth(reportSheet, "B", "B", 20)
	f.SetColWidth(reportSheet, "H", "I", 40)

	for row, op := range ops {
		entityID := ""
		if op.EntityID != nil {
			entityID = fmt.Sprintf("%d", *op.EntityID)
		}
		values := []interface{}{
			op.ID,
			op.CreatedAt.Format("2006-01-02 15:04:05"),
			op.UserID,
			string(op.OperationType),
			op.EntityType,
			entityID,
			op.Success,
			op.Description,
			op.ErrorMessage,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(reportSheet, cell, v)
		}
	}

	return s.upload(ctx, f, "history")
}

func (s *reportService) upload(ctx context.Context, f *excelize.File, kind string) (domain.ReportResponse, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return domain.ReportResponse{}, fmt.Errorf("%w: %s", domain.ErrPersistenceFailure, err.Error())
	}

	key := fmt.Sprintf("reports/%s-%s-%s.xlsx", kind, time.Now().Format("20060102"), uuid.New().String())
	if _, err := s.awsS3.UploadFile(ctx, key, buf, excelContentType); err != nil {
		return domain.ReportResponse{}, err
	}

	url, err := s.awsS3.PresignURL(ctx, key, presignValidity)
	if err != nil {
		return domain.ReportResponse{}, err
	}

	return domain.ReportResponse{FileKey: key, URL: url}, nil
}
