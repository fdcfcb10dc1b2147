package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers journal entry routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/invoice-issued", h.recordInvoiceIssued)
		transactions.POST("/payment-received", h.recordPaymentReceived)
		transactions.POST("/bill-received", h.recordBillReceived)
		transactions.POST("/expense-paid", h.recordExpensePaid)
		transactions.POST("/vendor-paid", h.recordVendorPaid)
	}
}

// respondServiceError maps service errors to HTTP responses using the closed
// error kinds.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed for "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found for "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict during "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStore):
		logger.Error("Store failure during "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create entry request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "create journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "get journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	params := dto.ListEntriesParams{Limit: limit}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversing, err := h.journalService.ReverseEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversing_entry_id", reversing.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversing))
}

func (h *journalHandler) recordInvoiceIssued(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.InvoiceIssuedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.journalService.RecordInvoiceIssued(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record invoice issued")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *journalHandler) recordPaymentReceived(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PaymentReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.journalService.RecordPaymentReceived(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record payment received")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *journalHandler) recordBillReceived(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.BillReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.journalService.RecordBillReceived(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record bill received")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *journalHandler) recordExpensePaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ExpensePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.journalService.RecordExpensePaid(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record expense paid")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *journalHandler) recordVendorPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.VendorPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.journalService.RecordVendorPaid(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record vendor payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
