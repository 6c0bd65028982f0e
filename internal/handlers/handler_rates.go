package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cocoluventas/sales_backend/internal/apperrors"
	portssvc "github.com/cocoluventas/sales_backend/internal/core/ports/services"
	"github.com/cocoluventas/sales_backend/internal/core/domain"
	"github.com/cocoluventas/sales_backend/internal/dto"
	"github.com/cocoluventas/sales_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to the daily rate ledger.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to the rate ledger.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/latest", h.getLatestRate)
		rates.GET("/history", h.getRateHistory)
		rates.GET("/stats", h.getRateStats)
		rates.GET("/:date", h.getRateByDate)
		rates.POST("", h.createRate)
	}
}

// getLatestRate godoc
// @Summary Get the most recent daily rate
// @Description Returns the newest entry in the rate ledger
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RateResponse
// @Failure 404 {object} map[string]string "Ledger is empty"
// @Security BearerAuth
// @Router /rates/latest [get]
func (h *rateHandler) getLatestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.rateService.GetLatestRate(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No rates recorded yet"})
			return
		}
		logger.Error("Failed to get latest rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get latest rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// getRateByDate godoc
// @Summary Get the rate for a calendar date
// @Description Returns the ledger entry for an exact date (YYYY-MM-DD)
// @Tags rates
// @Produce json
// @Param date path string true "Calendar date" example(2025-06-15)
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "No rate for date"
// @Security BearerAuth
// @Router /rates/{date} [get]
func (h *rateHandler) getRateByDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, err := time.Parse(dto.DateFormat, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	rate, err := h.rateService.GetRateByDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate recorded for " + c.Param("date")})
			return
		}
		logger.Error("Failed to get rate by date", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// getRateHistory godoc
// @Summary List the trailing rate history
// @Description Returns ledger entries for the last N days (default 7, max 365)
// @Tags rates
// @Produce json
// @Param days query int false "Trailing window in days" default(7)
// @Success 200 {object} dto.RateHistoryResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Security BearerAuth
// @Router /rates/history [get]
func (h *rateHandler) getRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	days, ok := parseDays(c)
	if !ok {
		return
	}

	rates, err := h.rateService.ListRateHistory(c.Request.Context(), days)
	if err != nil {
		logger.Error("Failed to list rate history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rate history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateHistoryResponse(days, rates))
}

// getRateStats godoc
// @Summary Rate statistics over a trailing window
// @Description Returns min/max/avg/count over the last N days (default 30)
// @Tags rates
// @Produce json
// @Param days query int false "Trailing window in days" default(30)
// @Success 200 {object} dto.RateStatsResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Security BearerAuth
// @Router /rates/stats [get]
func (h *rateHandler) getRateStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
			return
		}
		days = parsed
	}

	stats, err := h.rateService.GetRateStats(c.Request.Context(), days)
	if err != nil {
		logger.Error("Failed to compute rate stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute rate stats"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateStatsResponse(days, stats))
}

// createRate godoc
// @Summary Record a rate manually
// @Description Records a rate for a date; skipped when the date already has one
// @Tags rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateRateRequest true "Rate details"
// @Success 201 {object} dto.PersistOutcomeResponse
// @Success 200 {object} dto.PersistOutcomeResponse "Date already had an entry"
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /rates [post]
func (h *rateHandler) createRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	date, err := time.Parse(dto.DateFormat, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	outcome, err := h.rateService.RecordRate(c.Request.Context(), req.Rate, date, domain.RateSource(req.Source))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to record rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record rate"})
		return
	}

	status := http.StatusCreated
	if outcome == portssvc.OutcomeSkipped {
		status = http.StatusOK
	}
	c.JSON(status, dto.PersistOutcomeResponse{Outcome: string(outcome)})
}

func parseDays(c *gin.Context) (int, bool) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
			return 0, false
		}
		days = parsed
	}
	return days, true
}
