package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
	"github.com/tvhoang/wallet_ledger_app/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.POST("/:accountID/settle", h.settleStatement)
	}
}

// createAccount creates a new account for the authenticated user.
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("kind", string(req.Kind)))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount returns a single account owned by the authenticated user.
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts returns all accounts owned by the authenticated user.
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// updateAccount updates an account's details.
func (h *accountHandler) updateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	updated, err := h.accountService.UpdateAccount(c.Request.Context(), userID, accountID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(updated))
}

// deleteAccount removes an account that has no ledger entries.
func (h *accountHandler) deleteAccount(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	if err := h.accountService.DeleteAccount(c.Request.Context(), userID, accountID); err != nil {
		respondServiceError(c, err, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}

// settleStatement settles a credit card's outstanding balance, either paying
// it in full from another account or refinancing it for a fee.
func (h *accountHandler) settleStatement(c *gin.Context) {
	var req dto.SettleStatementRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to settle statement", slog.String("account_id", accountID), slog.String("mode", string(req.Mode)))

	settled, err := h.accountService.SettleStatement(c.Request.Context(), userID, accountID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to settle statement")
		return
	}

	logger.Info("Statement settled", slog.String("account_id", settled.AccountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(settled))
}
