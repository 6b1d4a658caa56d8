package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tvhoang/wallet_ledger_app/internal/core/ports/services"
	"github.com/tvhoang/wallet_ledger_app/internal/dto"
)

// analyticsHandler handles HTTP requests for ledger aggregation queries.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvc
}

func newAnalyticsHandler(as portssvc.AnalyticsSvc) *analyticsHandler {
	return &analyticsHandler{
		analyticsService: as,
	}
}

// registerAnalyticsRoutes registers routes related to analytics.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvc) {
	h := newAnalyticsHandler(analyticsService)

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/overview", h.monthlyOverview)
		analytics.GET("/daily-flow", h.dailyFlow)
		analytics.GET("/trend", h.trend)
		analytics.GET("/category-breakdown", h.categoryBreakdown)
		analytics.GET("/spending-warning", h.spendingWarning)
		analytics.GET("/card-fees", h.cardFees)
		analytics.GET("/debt-status", h.debtStatus)
		analytics.GET("/upcoming-payments", h.upcomingPayments)
	}
}

// monthAsOf resolves the optional year/month query parameters to a reference
// time inside the requested month, defaulting to now.
func monthAsOf(c *gin.Context) (time.Time, bool) {
	var params dto.AnalyticsMonthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return time.Time{}, false
	}
	now := time.Now().UTC()
	if params.Year == nil && params.Month == nil {
		return now, true
	}
	year, month := now.Year(), now.Month()
	if params.Year != nil {
		year = *params.Year
	}
	if params.Month != nil {
		month = time.Month(*params.Month)
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

func (h *analyticsHandler) monthlyOverview(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	asOf, ok := monthAsOf(c)
	if !ok {
		return
	}

	overview, err := h.analyticsService.GetMonthlyOverview(c.Request.Context(), userID, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to get monthly overview")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyOverviewResponse(overview))
}

func (h *analyticsHandler) dailyFlow(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	asOf, ok := monthAsOf(c)
	if !ok {
		return
	}

	flows, err := h.analyticsService.GetDailyFlow(c.Request.Context(), userID, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to get daily flow")
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": dto.ToDailyFlowResponses(flows)})
}

func (h *analyticsHandler) trend(c *gin.Context) {
	var params dto.TrendParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	points, err := h.analyticsService.GetTrend(c.Request.Context(), userID, time.Now().UTC(), params.Months)
	if err != nil {
		respondServiceError(c, err, "Failed to get trend")
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": dto.ToTrendPointResponses(points)})
}

func (h *analyticsHandler) categoryBreakdown(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	asOf, ok := monthAsOf(c)
	if !ok {
		return
	}

	rows, err := h.analyticsService.GetCategoryBreakdown(c.Request.Context(), userID, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to get category breakdown")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": dto.ToCategoryBreakdownResponses(rows)})
}

func (h *analyticsHandler) spendingWarning(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	warning, err := h.analyticsService.GetSpendingWarning(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		respondServiceError(c, err, "Failed to get spending warning")
		return
	}

	c.JSON(http.StatusOK, dto.ToSpendingWarningResponse(warning))
}

func (h *analyticsHandler) cardFees(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	asOf, ok := monthAsOf(c)
	if !ok {
		return
	}

	total, err := h.analyticsService.GetCardFees(c.Request.Context(), userID, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to get card fees")
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *analyticsHandler) debtStatus(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	rows, err := h.analyticsService.GetDebtStatus(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get debt status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"debts": dto.ToDebtStatusResponses(rows)})
}

// upcomingPayments returns the merged list of credit card due dates and
// pending debt installments inside the alert window, nearest first.
func (h *analyticsHandler) upcomingPayments(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	payments, err := h.analyticsService.GetUpcomingPayments(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		respondServiceError(c, err, "Failed to get upcoming payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": dto.ToUpcomingPaymentResponses(payments)})
}
