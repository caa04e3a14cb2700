package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	"github.com/kcetin/venue_booking_app/internal/core/domain"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/dto"
	"github.com/kcetin/venue_booking_app/internal/middleware"
)

// cashflowHandler handles HTTP requests for the cashflow forecast.
type cashflowHandler struct {
	cashflowService portssvc.CashflowServiceFacade
}

func newCashflowHandler(cashflowService portssvc.CashflowServiceFacade) *cashflowHandler {
	return &cashflowHandler{
		cashflowService: cashflowService,
	}
}

func registerCashflowRoutes(rg *gin.RouterGroup, cashflowService portssvc.CashflowServiceFacade) {
	h := newCashflowHandler(cashflowService)

	rg.GET("/cashflow", h.getCashflow)
	rg.GET("/cashflow/obligations", h.getPendingObligations)
}

// getCashflow godoc
// @Summary Cashflow forecast
// @Description Builds the forward-looking cashflow forecast in weekly or monthly buckets
// @Tags cashflow
// @Produce  json
// @Param   period query string false "Bucket kind: weeks or months" default(weeks)
// @Param   weeks query int false "Number of weekly buckets" default(4)
// @Param   months query int false "Number of monthly buckets" default(3)
// @Success 200 {object} dto.CashflowResponse "Forecast periods"
// @Failure 400 {object} map[string]string "Invalid period or count"
// @Router /cashflow [get]
func (h *cashflowHandler) getCashflow(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	kind := domain.PeriodWeekly
	countParam := c.DefaultQuery("weeks", "4")
	if c.DefaultQuery("period", "weeks") == "months" {
		kind = domain.PeriodMonthly
		countParam = c.DefaultQuery("months", "3")
	}

	count, err := strconv.Atoi(countParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Period count must be a number"})
		return
	}

	periods, err := h.cashflowService.Forecast(c.Request.Context(), kind, count)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build cashflow forecast", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build cashflow forecast"})
		return
	}

	c.JSON(http.StatusOK, dto.CashflowResponse{Cashflow: periods})
}

// getPendingObligations godoc
// @Summary Pending obligations
// @Description Lists the unpaid remainder of each non-cancelled reservation's contract price
// @Tags cashflow
// @Produce  json
// @Success 200 {object} dto.PendingObligationsResponse "Pending obligations"
// @Router /cashflow/obligations [get]
func (h *cashflowHandler) getPendingObligations(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	obligations, err := h.cashflowService.PendingObligations(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list pending obligations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending obligations"})
		return
	}

	c.JSON(http.StatusOK, dto.PendingObligationsResponse{Obligations: obligations})
}
