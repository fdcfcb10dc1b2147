package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/bizbooks/bizbooks_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the financial statement routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlow)
	}
}

// parseRange parses fromDate/toDate query parameters, defaulting to the
// current month, and validates their order. Returns ok=false after writing
// the error response.
func parseRange(c *gin.Context, logger *slog.Logger) (time.Time, time.Time, bool) {
	now := time.Now()
	firstDayOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	fromStr := c.DefaultQuery("fromDate", firstDayOfMonth.Format("2006-01-02"))
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		logger.Warn("Invalid from date format", slog.String("fromDate", fromStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fromDate format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}

	toStr := c.DefaultQuery("toDate", now.Format("2006-01-02"))
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		logger.Warn("Invalid to date format", slog.String("toDate", toStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toDate format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}

	if from.After(to) {
		logger.Warn("Invalid date range", slog.String("fromDate", fromStr), slog.String("toDate", toStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "fromDate must be before or equal to toDate"})
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := parseRange(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "generate profit and loss report")
		return
	}

	logger.Info("Profit and loss report generated",
		slog.Int("revenue_accounts", len(report.Revenue.Items)),
		slog.String("net_income", utils.FormatReportAmount(report.NetIncome)))
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, logger, err, "generate balance sheet report")
		return
	}

	logger.Info("Balance sheet report generated",
		slog.String("total_assets", utils.FormatReportAmount(report.TotalAssets)),
		slog.Bool("balance_check", report.BalanceCheck))
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := parseRange(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "generate cash flow report")
		return
	}

	logger.Info("Cash flow report generated",
		slog.String("net_cash_flow", utils.FormatReportAmount(report.NetCashFlow)),
		slog.Bool("cash_flow_validation", report.CashFlowValidation))
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}
