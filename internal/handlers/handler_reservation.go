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

// reservationHandler handles HTTP requests related to reservations.
type reservationHandler struct {
	reservationService  portssvc.ReservationServiceFacade
	cancellationService portssvc.CancellationServiceFacade
}

func newReservationHandler(reservationService portssvc.ReservationServiceFacade, cancellationService portssvc.CancellationServiceFacade) *reservationHandler {
	return &reservationHandler{
		reservationService:  reservationService,
		cancellationService: cancellationService,
	}
}

func registerReservationRoutes(rg *gin.RouterGroup, reservationService portssvc.ReservationServiceFacade, cancellationService portssvc.CancellationServiceFacade) {
	h := newReservationHandler(reservationService, cancellationService)

	reservations := rg.Group("/reservations")
	reservations.POST("", h.createReservation)
	reservations.GET("", h.listReservations)
	reservations.GET("/:reservationID", h.getReservation)
	reservations.PATCH("/:reservationID/status", h.updateStatus)
	reservations.POST("/:reservationID/cancel", h.cancelReservation)
}

// createReservation godoc
// @Summary Create a reservation
// @Description Creates a reservation in OPEN status
// @Tags reservations
// @Accept  json
// @Produce  json
// @Param   reservation body dto.CreateReservationRequest true "Reservation details"
// @Success 201 {object} dto.ReservationResponse "Created reservation"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Reservation number already exists"
// @Router /reservations [post]
func (h *reservationHandler) createReservation(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.CreateReservationRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createReservation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create reservation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ReservationResponse{Reservation: *reservation})
}

// listReservations godoc
// @Summary List reservations
// @Description Retrieves a page of reservations ordered by reservation date
// @Tags reservations
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListReservationsResponse "Reservations"
// @Router /reservations [get]
func (h *reservationHandler) listReservations(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reservations, err := h.reservationService.ListReservations(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list reservations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reservations"})
		return
	}

	c.JSON(http.StatusOK, dto.ListReservationsResponse{Reservations: reservations})
}

// getReservation godoc
// @Summary Get a reservation
// @Description Retrieves a reservation with its active payments and totals
// @Tags reservations
// @Produce  json
// @Param   reservationID path string true "Reservation ID"
// @Success 200 {object} dto.ReservationDetailResponse "Reservation detail"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Router /reservations/{reservationID} [get]
func (h *reservationHandler) getReservation(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	reservationID := c.Param("reservationID")

	detail, err := h.reservationService.GetReservation(c.Request.Context(), reservationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		logger.Error("Failed to get reservation", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservation"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// cancelReservation godoc
// @Summary Cancel a reservation
// @Description Cancels a reservation, voiding its payments and reversing their cash box effects best effort
// @Tags reservations
// @Produce  json
// @Param   reservationID path string true "Reservation ID"
// @Success 200 {object} dto.ReversalReportResponse "Per-payment reversal outcomes"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Router /reservations/{reservationID}/cancel [post]
func (h *reservationHandler) cancelReservation(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	reservationID := c.Param("reservationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Reversal failures do not surface as an error here. The reservation is
	// cancelled either way and the report carries the per-payment outcomes.
	report, err := h.cancellationService.CancelReservation(c.Request.Context(), userID, reservationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		logger.Error("Failed to cancel reservation", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reservation"})
		return
	}

	resp := dto.ReversalReportResponse{Report: *report}
	detail, err := h.reservationService.GetReservation(c.Request.Context(), reservationID)
	if err != nil {
		// The cancellation already landed; a failed re-read only costs the
		// reservation echo in the response.
		logger.Warn("Failed to reload cancelled reservation", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
	} else {
		resp.Reservation = detail.Reservation
	}

	c.JSON(http.StatusOK, resp)
}

// updateStatus godoc
// @Summary Update a reservation's status
// @Description Moves a reservation to a new lifecycle state; CANCELLED runs the payment reversal flow
// @Tags reservations
// @Accept  json
// @Produce  json
// @Param   reservationID path string true "Reservation ID"
// @Param   status body dto.UpdateReservationStatusRequest true "Target status"
// @Success 200 {object} dto.ReservationResponse "Updated reservation"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Router /reservations/{reservationID}/status [patch]
func (h *reservationHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	reservationID := c.Param("reservationID")

	req := dto.UpdateReservationStatusRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// The Cancelled transition carries payment reversal with it.
	if domain.ReservationStatus(req.Status) == domain.ReservationCancelled {
		h.cancelReservation(c)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reservation, err := h.reservationService.UpdateReservationStatus(c.Request.Context(), userID, reservationID, domain.ReservationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		default:
			logger.Error("Failed to update reservation status", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ReservationResponse{Reservation: *reservation})
}
