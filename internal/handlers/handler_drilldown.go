package handlers

import (
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// drillDownHandler handles HTTP requests for report drill-downs.
type drillDownHandler struct {
	drillDownService portssvc.DrillDownSvcFacade
}

func newDrillDownHandler(ds portssvc.DrillDownSvcFacade) *drillDownHandler {
	return &drillDownHandler{drillDownService: ds}
}

// registerDrillDownRoutes registers the drill-down route.
func registerDrillDownRoutes(rg *gin.RouterGroup, drillDownService portssvc.DrillDownSvcFacade) {
	h := newDrillDownHandler(drillDownService)
	rg.GET("/reports/drill-down/:account_code", h.drillDown)
}

// parseOptionalDate parses an optional YYYY-MM-DD query parameter. A parse
// failure is reported via ok=false after the response is written.
func parseOptionalDate(c *gin.Context, name string) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format. Use YYYY-MM-DD"})
		return nil, false
	}
	return &parsed, true
}

func (h *drillDownHandler) drillDown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.DrillDownRequest{
		ReportType:  c.DefaultQuery("reportType", "profit_and_loss"),
		AccountCode: c.Param("account_code"),
	}

	var ok bool
	if req.From, ok = parseOptionalDate(c, "fromDate"); !ok {
		return
	}
	if req.To, ok = parseOptionalDate(c, "toDate"); !ok {
		return
	}
	if req.AsOf, ok = parseOptionalDate(c, "asOf"); !ok {
		return
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		req.Limit = parsed
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset parameter"})
			return
		}
		req.Offset = parsed
	}

	result, err := h.drillDownService.DrillDown(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "resolve drill-down")
		return
	}

	c.JSON(http.StatusOK, dto.ToDrillDownResponse(result))
}
