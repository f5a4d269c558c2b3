package domain

var (
	MessageSuccessStockReport   = "stock report generated successfully"
	MessageSuccessHistoryReport = "operation history report generated successfully"

	MessageFailedStockReport   = "failed to generate stock report"
	MessageFailedHistoryReport = "failed to generate operation history report"
)

type (
	ReportResponse struct {
		FileKey string `json:"file_key"`
		URL     string `json:"url"`
	}
)
