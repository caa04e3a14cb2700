package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kcetin/venue_booking_app/internal/apperrors"
	portssvc "github.com/kcetin/venue_booking_app/internal/core/ports/services"
	"github.com/kcetin/venue_booking_app/internal/dto"
	"github.com/kcetin/venue_booking_app/internal/middleware"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentServiceFacade
}

func newPaymentHandler(paymentService portssvc.PaymentServiceFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
	}
}

// RegisterPaymentRoutes wires the payment endpoints into the given group.
func RegisterPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentServiceFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	payments.POST("", h.recordPayment)
	payments.GET("", h.listPayments)
	payments.GET("/:paymentID", h.getPayment)
	payments.PUT("/:paymentID", h.updatePayment)
	payments.DELETE("/:paymentID", h.cancelPayment)
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment against a reservation, confirming the reservation when fully paid
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse "Created payment"
// @Failure 400 {object} map[string]string "Invalid request or amount"
// @Failure 404 {object} map[string]string "Reservation or cash box not found"
// @Failure 409 {object} map[string]string "Reservation is cancelled"
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.CreatePaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error recording payment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Payment recorded via API", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.PaymentResponse{Payment: *payment})
}

// listPayments godoc
// @Summary List payments of a reservation
// @Description Retrieves the non-cancelled payments of a reservation in creation order
// @Tags payments
// @Produce  json
// @Param   reservationId query string true "Reservation ID"
// @Success 200 {object} dto.ListPaymentsResponse "Payments"
// @Failure 400 {object} map[string]string "Missing reservation ID"
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	reservationID := c.Query("reservationId")
	if reservationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reservationId query parameter is required"})
		return
	}

	payments, err := h.paymentService.ListPaymentsByReservation(c.Request.Context(), reservationID)
	if err != nil {
		logger.Error("Failed to list payments", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: payments})
}

// getPayment godoc
// @Summary Get a payment
// @Description Retrieves a payment by ID
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse "Payment"
// @Failure 404 {object} map[string]string "Payment not found"
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	paymentID := c.Param("paymentID")

	payment, err := h.paymentService.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		logger.Error("Failed to get payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		return
	}

	c.JSON(http.StatusOK, dto.PaymentResponse{Payment: *payment})
}

// updatePayment godoc
// @Summary Edit a payment
// @Description Updates the amount, date, method or notes of a non-cancelled payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Param   payment body dto.UpdatePaymentRequest true "Updated fields"
// @Success 200 {object} dto.PaymentResponse "Updated payment"
// @Failure 400 {object} map[string]string "Invalid request or amount"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment is cancelled"
// @Router /payments/{paymentID} [put]
func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	paymentID := c.Param("paymentID")

	req := dto.UpdatePaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), userID, paymentID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PaymentResponse{Payment: *payment})
}

// cancelPayment godoc
// @Summary Cancel a payment
// @Description Marks a payment cancelled and reverses its cash box effect
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 204 "Payment cancelled"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment already cancelled"
// @Router /payments/{paymentID} [delete]
func (h *paymentHandler) cancelPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	paymentID := c.Param("paymentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.paymentService.CancelPayment(c.Request.Context(), userID, paymentID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to cancel payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel payment"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
