package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/cocoluventas/sales_backend/internal/core/ports/services"
	"github.com/cocoluventas/sales_backend/internal/dto"
	"github.com/cocoluventas/sales_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for revenue and anomaly reports.
type reportHandler struct {
	reconciliationService portssvc.ReconciliationSvc
}

// newReportHandler creates a new reportHandler.
func newReportHandler(rs portssvc.ReconciliationSvc) *reportHandler {
	return &reportHandler{reconciliationService: rs}
}

// registerReportRoutes registers the reconciliation report routes.
func registerReportRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvc) {
	h := newReportHandler(reconciliationService)

	reports := rg.Group("/reports")
	{
		reports.GET("/revenue", h.getRevenueReport)
		reports.GET("/anomalies", h.getAnomalyReport)
		reports.GET("/orders", h.listOrders)
	}
}

// getRevenueReport godoc
// @Summary Revenue report over a date window
// @Description Aggregates realized vs nominal revenue for orders created in [from, to]
// @Tags reports
// @Produce json
// @Param from query string true "Window start" example(2025-06-01)
// @Param to query string true "Window end (inclusive)" example(2025-06-30)
// @Success 200 {object} dto.RevenueSummaryResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Security BearerAuth
// @Router /reports/revenue [get]
func (h *reportHandler) getRevenueReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	summary, err := h.reconciliationService.RevenueReport(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build revenue report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build revenue report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRevenueSummaryResponse(from, to.AddDate(0, 0, -1), summary))
}

// getAnomalyReport godoc
// @Summary Data-consistency anomalies over a date window
// @Description Flags orders whose realized revenue exceeds their nominal total
// @Tags reports
// @Produce json
// @Param from query string true "Window start" example(2025-06-01)
// @Param to query string true "Window end (inclusive)" example(2025-06-30)
// @Success 200 {object} dto.AnomalyReportResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Security BearerAuth
// @Router /reports/anomalies [get]
func (h *reportHandler) getAnomalyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	orders, err := h.reconciliationService.ListOrders(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to load orders for anomaly report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build anomaly report"})
		return
	}

	report := dto.AnomalyReportResponse{
		From:      from.Format(dto.DateFormat),
		To:        to.AddDate(0, 0, -1).Format(dto.DateFormat),
		Checked:   len(orders),
		Anomalies: []dto.AnomalyResponse{},
	}
	for anomaly := range h.reconciliationService.DetectAnomalies(orders) {
		report.Anomalies = append(report.Anomalies, dto.AnomalyResponse{
			Order:  dto.ToOrderResponse(anomaly.Order, h.reconciliationService.ComputeRealizedRevenue(anomaly.Order)),
			Reason: anomaly.Reason,
		})
	}

	c.JSON(http.StatusOK, report)
}

// listOrders godoc
// @Summary List orders with computed realized revenue
// @Description Lists orders created in [from, to] with per-order realized revenue
// @Tags reports
// @Produce json
// @Param from query string true "Window start" example(2025-06-01)
// @Param to query string true "Window end (inclusive)" example(2025-06-30)
// @Success 200 {array} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Security BearerAuth
// @Router /reports/orders [get]
func (h *reportHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	orders, err := h.reconciliationService.ListOrders(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to list orders", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	responses := make([]dto.OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = dto.ToOrderResponse(order, h.reconciliationService.ComputeRealizedRevenue(order))
	}

	c.JSON(http.StatusOK, responses)
}

// parseWindow reads the from/to query params and returns a half-open
// [from, to+1d) range; 'to' is inclusive on the wire.
func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(dto.DateFormat, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}

	to, err := time.Parse(dto.DateFormat, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}

	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'to' must not be before 'from'"})
		return time.Time{}, time.Time{}, false
	}

	return from, to.AddDate(0, 0, 1), true
}
