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

// cashBoxHandler handles HTTP requests related to cash boxes and their ledgers.
type cashBoxHandler struct {
	cashBoxService portssvc.CashBoxServiceFacade
}

func newCashBoxHandler(cashBoxService portssvc.CashBoxServiceFacade) *cashBoxHandler {
	return &cashBoxHandler{
		cashBoxService: cashBoxService,
	}
}

func registerCashBoxRoutes(rg *gin.RouterGroup, cashBoxService portssvc.CashBoxServiceFacade) {
	h := newCashBoxHandler(cashBoxService)

	cashboxes := rg.Group("/cashboxes")
	cashboxes.POST("", h.createCashBox)
	cashboxes.GET("", h.listCashBoxes)
	cashboxes.POST("/transfer", h.transfer)
	cashboxes.GET("/:cashBoxID", h.getCashBox)
	cashboxes.DELETE("/:cashBoxID", h.deactivateCashBox)
	cashboxes.POST("/:cashBoxID/transactions", h.recordLedgerEntry)
	cashboxes.GET("/:cashBoxID/transactions", h.listLedger)
}

// createCashBox godoc
// @Summary Create a cash box
// @Description Creates a cash box with an opening balance
// @Tags cashboxes
// @Accept  json
// @Produce  json
// @Param   cashbox body dto.CreateCashBoxRequest true "Cash box details"
// @Success 201 {object} dto.CashBoxResponse "Created cash box"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /cashboxes [post]
func (h *cashBoxHandler) createCashBox(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.CreateCashBoxRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createCashBox", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	box, err := h.cashBoxService.CreateCashBox(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create cash box", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cash box"})
		return
	}

	c.JSON(http.StatusCreated, dto.CashBoxResponse{CashBox: *box})
}

// listCashBoxes godoc
// @Summary List cash boxes
// @Description Retrieves all cash boxes, active ones first
// @Tags cashboxes
// @Produce  json
// @Success 200 {object} dto.ListCashBoxesResponse "Cash boxes"
// @Router /cashboxes [get]
func (h *cashBoxHandler) listCashBoxes(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	boxes, err := h.cashBoxService.ListCashBoxes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list cash boxes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cash boxes"})
		return
	}

	c.JSON(http.StatusOK, dto.ListCashBoxesResponse{CashBoxes: boxes})
}

// getCashBox godoc
// @Summary Get a cash box
// @Description Retrieves a cash box with its balance recomputed from the full history
// @Tags cashboxes
// @Produce  json
// @Param   cashBoxID path string true "Cash box ID"
// @Success 200 {object} dto.CashBoxResponse "Cash box"
// @Failure 404 {object} map[string]string "Cash box not found"
// @Router /cashboxes/{cashBoxID} [get]
func (h *cashBoxHandler) getCashBox(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	cashBoxID := c.Param("cashBoxID")

	box, err := h.cashBoxService.GetCashBox(c.Request.Context(), cashBoxID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cash box not found"})
			return
		}
		logger.Error("Failed to get cash box", slog.String("error", err.Error()), slog.String("cash_box_id", cashBoxID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cash box"})
		return
	}

	c.JSON(http.StatusOK, dto.CashBoxResponse{CashBox: *box})
}

// deactivateCashBox godoc
// @Summary Deactivate a cash box
// @Description Marks a cash box inactive, keeping its history
// @Tags cashboxes
// @Produce  json
// @Param   cashBoxID path string true "Cash box ID"
// @Success 204 "Cash box deactivated"
// @Failure 404 {object} map[string]string "Cash box not found"
// @Router /cashboxes/{cashBoxID} [delete]
func (h *cashBoxHandler) deactivateCashBox(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	cashBoxID := c.Param("cashBoxID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.cashBoxService.DeactivateCashBox(c.Request.Context(), userID, cashBoxID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cash box not found"})
			return
		}
		logger.Error("Failed to deactivate cash box", slog.String("error", err.Error()), slog.String("cash_box_id", cashBoxID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate cash box"})
		return
	}

	c.Status(http.StatusNoContent)
}

// recordLedgerEntry godoc
// @Summary Record a manual ledger entry
// @Description Appends an income or expense entry to a cash box's ledger
// @Tags cashboxes
// @Accept  json
// @Produce  json
// @Param   cashBoxID path string true "Cash box ID"
// @Param   entry body dto.CreateLedgerEntryRequest true "Ledger entry"
// @Success 201 {object} dto.LedgerEntryResponse "Created entry"
// @Failure 400 {object} map[string]string "Invalid request or amount"
// @Failure 404 {object} map[string]string "Cash box not found"
// @Failure 409 {object} map[string]string "Cash box is deactivated"
// @Router /cashboxes/{cashBoxID}/transactions [post]
func (h *cashBoxHandler) recordLedgerEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	cashBoxID := c.Param("cashBoxID")

	req := dto.CreateLedgerEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordLedgerEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.cashBoxService.RecordLedgerEntry(c.Request.Context(), userID, cashBoxID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cash box not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record ledger entry", slog.String("error", err.Error()), slog.String("cash_box_id", cashBoxID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record ledger entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.LedgerEntryResponse{Transaction: *entry})
}

// listLedger godoc
// @Summary List a cash box's ledger
// @Description Retrieves a cash box's ledger entries ordered by date
// @Tags cashboxes
// @Produce  json
// @Param   cashBoxID path string true "Cash box ID"
// @Success 200 {object} dto.LedgerResponse "Ledger entries"
// @Failure 404 {object} map[string]string "Cash box not found"
// @Router /cashboxes/{cashBoxID}/transactions [get]
func (h *cashBoxHandler) listLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	cashBoxID := c.Param("cashBoxID")

	txns, err := h.cashBoxService.ListLedger(c.Request.Context(), cashBoxID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cash box not found"})
			return
		}
		logger.Error("Failed to list ledger", slog.String("error", err.Error()), slog.String("cash_box_id", cashBoxID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.LedgerResponse{Transactions: txns})
}

// transfer godoc
// @Summary Transfer between cash boxes
// @Description Moves an amount between two cash boxes as a paired transfer-out and transfer-in
// @Tags cashboxes
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 204 "Transfer recorded"
// @Failure 400 {object} map[string]string "Invalid request or amount"
// @Failure 404 {object} map[string]string "Cash box not found"
// @Failure 409 {object} map[string]string "Cash box is deactivated"
// @Router /cashboxes/transfer [post]
func (h *cashBoxHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	req := dto.TransferRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.cashBoxService.Transfer(c.Request.Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cash box not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transfer"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
