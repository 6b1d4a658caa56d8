package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
	"github.com/tvhoang/wallet_ledger_app/internal/middleware"
)

// debtHandler handles HTTP requests related to debts and their installments.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

// newDebtHandler creates a new debtHandler.
func newDebtHandler(ds portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{
		debtService: ds,
	}
}

// registerDebtRoutes registers routes related to debts.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	debts := rg.Group("/debts")
	{
		debts.POST("", h.createDebt)
		debts.GET("", h.listDebts)
		debts.GET("/:debtID", h.getDebt)
		debts.PUT("/:debtID", h.updateDebt)
		debts.DELETE("/:debtID", h.deleteDebt)
		debts.POST("/:debtID/pay", h.payInstallment)
	}
}

// createDebt records a new debt. Installment debts get their schedule
// materialized immediately.
func (h *debtHandler) createDebt(c *gin.Context) {
	var req dto.CreateDebtRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create debt", slog.String("partner", req.PartnerName), slog.String("kind", string(req.Kind)))

	debt, err := h.debtService.CreateDebt(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create debt")
		return
	}

	logger.Info("Debt created", slog.String("debt_id", debt.DebtID))
	c.JSON(http.StatusCreated, dto.ToDebtResponse(debt, nil))
}

// getDebt returns a debt together with its installment schedule.
func (h *debtHandler) getDebt(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	debtID := c.Param("debtID")

	debt, installments, err := h.debtService.GetDebtByID(c.Request.Context(), userID, debtID)
	if err != nil {
		respondServiceError(c, err, "Failed to get debt")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt, installments))
}

// listDebts returns the user's debts, optionally filtered by status.
func (h *debtHandler) listDebts(c *gin.Context) {
	var params dto.ListDebtsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	var status *domain.DebtStatus
	if params.Status != nil {
		s := domain.DebtStatus(*params.Status)
		status = &s
	}

	debts, err := h.debtService.ListDebts(c.Request.Context(), userID, status)
	if err != nil {
		respondServiceError(c, err, "Failed to list debts")
		return
	}

	c.JSON(http.StatusOK, dto.ListDebtsResponse{Debts: dto.ToListDebtResponse(debts)})
}

// updateDebt updates a debt's non-structural details.
func (h *debtHandler) updateDebt(c *gin.Context) {
	var req dto.UpdateDebtRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	debtID := c.Param("debtID")

	debt, err := h.debtService.UpdateDebt(c.Request.Context(), userID, debtID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update debt")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt, nil))
}

// deleteDebt removes a debt and its installment schedule.
func (h *debtHandler) deleteDebt(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	debtID := c.Param("debtID")

	if err := h.debtService.DeleteDebt(c.Request.Context(), userID, debtID); err != nil {
		respondServiceError(c, err, "Failed to delete debt")
		return
	}

	c.Status(http.StatusNoContent)
}

// payInstallment settles the pending installment of a debt from an account.
func (h *debtHandler) payInstallment(c *gin.Context) {
	var req dto.PayInstallmentRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	debtID := c.Param("debtID")

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to pay installment", slog.String("debt_id", debtID), slog.String("account_id", req.AccountID))

	debt, err := h.debtService.PayInstallment(c.Request.Context(), userID, debtID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to pay installment")
		return
	}

	logger.Info("Installment paid", slog.String("debt_id", debt.DebtID), slog.Int("paid_months", debt.PaidMonths))
	c.JSON(http.StatusOK, dto.ToDebtResponse(debt, nil))
}
