package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/tvhoang/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
	"github.com/tvhoang/wallet_ledger_app/internal/middleware"
)

// entryHandler handles HTTP requests related to ledger entries.
type entryHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(ls portssvc.LedgerSvcFacade) *entryHandler {
	return &entryHandler{
		ledgerService: ls,
	}
}

// registerEntryRoutes registers routes related to ledger entries.
func registerEntryRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newEntryHandler(ledgerService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.recordEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.amendEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}

// recordEntry records a new ledger entry and applies its balance effect.
func (h *entryHandler) recordEntry(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to record entry", slog.String("kind", string(req.Kind)), slog.String("source_account_id", req.SourceAccountID))

	entry, err := h.ledgerService.RecordEntry(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to record entry")
		return
	}

	logger.Info("Entry recorded", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry returns a single entry owned by the authenticated user.
func (h *entryHandler) getEntry(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), userID, entryID)
	if err != nil {
		respondServiceError(c, err, "Failed to get entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries returns a token-paginated list of the user's entries, newest
// first, narrowed by the optional query filters.
func (h *entryHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	filter := portsrepo.EntryListFilter{
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		From:       params.From,
		To:         params.To,
	}
	if params.Kind != nil {
		kind := domain.EntryKind(*params.Kind)
		filter.Kind = &kind
	}

	entries, nextToken, err := h.ledgerService.ListEntries(c.Request.Context(), userID, filter, params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, nextToken))
}

// amendEntry replaces an entry's fields, reverting the stored balance effect
// and applying the new one atomically.
func (h *entryHandler) amendEntry(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	entry, err := h.ledgerService.AmendEntry(c.Request.Context(), userID, entryID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to amend entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry removes an entry and reverts its balance effect.
func (h *entryHandler) deleteEntry(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		respondServiceError(c, err, "Failed to delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}
