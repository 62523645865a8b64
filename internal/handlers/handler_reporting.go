package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	"github.com/dafatir/dafatir_backend/internal/core/domain"
	"github.com/dafatir/dafatir_backend/internal/core/ledger"
	portssvc "github.com/dafatir/dafatir_backend/internal/core/ports/services"
	"github.com/dafatir/dafatir_backend/internal/dto"
	"github.com/dafatir/dafatir_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to ledger reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to ledger reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, rateLimit gin.HandlerFunc) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports", rateLimit)
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/ledger/:account_id", h.getAccountBook)
		reportingGroup.GET("/cash-book/:account_id", h.getCashBook)
		reportingGroup.GET("/bank-book/:account_id", h.getBankBook)
		reportingGroup.GET("/commission", h.getCommission)
		reportingGroup.GET("/zakat", h.getZakat)
	}
}

// parseDateQuery reads a YYYY-MM-DD query parameter, defaulting when absent.
func parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.DefaultQuery(name, fallback.Format("2006-01-02"))
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

// statusFilterQuery builds the status filter from the includeDraft toggle the
// entry screens expose. Voided groups are never included.
func statusFilterQuery(c *gin.Context) ledger.StatusFilter {
	if c.Query("includeDraft") == "true" {
		return ledger.NewStatusFilter(domain.Posted, domain.Draft)
	}
	return ledger.NewStatusFilter(domain.Posted)
}

// displayModeQuery reads the document-currency column toggle.
func displayModeQuery(c *gin.Context) ledger.DisplayMode {
	if c.Query("displayMode") == "document" {
		return ledger.DisplayBaseAndDocument
	}
	return ledger.DisplayBaseOnly
}

// respondReportError maps computation errors to HTTP statuses shared by all
// report endpoints.
func respondReportError(c *gin.Context, logger *slog.Logger, report string, err error) {
	var unbalanced *apperrors.UnbalancedGroupError
	var configErr *apperrors.ConfigurationError
	var missingRef *apperrors.MissingReferenceError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &unbalanced):
		// The log contains a group violating the invariant and the policy
		// says abort rather than exclude.
		logger.Error("Report aborted on unbalanced group",
			slog.String("report", report),
			slog.String("group_id", unbalanced.GroupID),
			slog.String("imbalance", unbalanced.Imbalance.String()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &configErr), errors.As(err, &missingRef):
		logger.Error("Report aborted on ledger data defect",
			slog.String("report", report),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to generate report",
			slog.String("report", report),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate " + report + " report"})
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Computes every active account's net debit or credit position as of the end of a date. Totals of the two columns are equal when the log is consistent.
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Param includeDraft query bool false "Count draft groups as well as posted"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Ledger contains an unbalanced group"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseDateQuery(c, "asOf", time.Now())
	if !ok {
		return
	}
	filter := statusFilterQuery(c)

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf, filter)
	if err != nil {
		respondReportError(c, logger, "trial balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getAccountBook godoc
// @Summary Generate the ledger view of one account
// @Description Opening balance, dated movements with running balances, and closing balance for one account over a date range
// @Tags reports
// @Produce json
// @Param account_id path string true "Account ID"
// @Param fromDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param toDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Param includeDraft query bool false "Count draft groups as well as posted"
// @Param displayMode query string false "Set to 'document' to include document-currency columns"
// @Success 200 {object} dto.AccountBookResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/ledger/{account_id} [get]
func (h *reportingHandler) getAccountBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")

	now := time.Now()
	from, ok := parseDateQuery(c, "fromDate", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "toDate", now)
	if !ok {
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toDate must not precede fromDate"})
		return
	}

	report, err := h.reportingService.AccountBook(c.Request.Context(), accountID, from, to, statusFilterQuery(c), displayModeQuery(c))
	if err != nil {
		respondReportError(c, logger, "account book", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBookResponse(report))
}

// getCashBook godoc
// @Summary Generate the cash book of a cash account
// @Description The ledger view restricted to accounts flagged as cash book, counting posted groups only
// @Tags reports
// @Produce json
// @Param account_id path string true "Account ID"
// @Param fromDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param toDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Param displayMode query string false "Set to 'document' to include document-currency columns"
// @Success 200 {object} dto.AccountBookResponse
// @Failure 400 {object} map[string]string "Account is not a cash book account"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/cash-book/{account_id} [get]
func (h *reportingHandler) getCashBook(c *gin.Context) {
	h.flaggedBook(c, "cash book", h.reportingService.CashBook)
}

// getBankBook godoc
// @Summary Generate the bank book of a bank account
// @Description The ledger view restricted to accounts flagged as bank, counting posted groups only
// @Tags reports
// @Produce json
// @Param account_id path string true "Account ID"
// @Param fromDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param toDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Param displayMode query string false "Set to 'document' to include document-currency columns"
// @Success 200 {object} dto.AccountBookResponse
// @Failure 400 {object} map[string]string "Account is not a bank account"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/bank-book/{account_id} [get]
func (h *reportingHandler) getBankBook(c *gin.Context) {
	h.flaggedBook(c, "bank book", h.reportingService.BankBook)
}

// flaggedBook shares the parameter handling of the cash book and bank book
// endpoints, which differ only in the service call.
func (h *reportingHandler) flaggedBook(c *gin.Context, name string, compute func(ctx context.Context, accountID string, from, to time.Time, mode ledger.DisplayMode) (*domain.AccountBookReport, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("account_id")

	now := time.Now()
	from, ok := parseDateQuery(c, "fromDate", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "toDate", now)
	if !ok {
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toDate must not precede fromDate"})
		return
	}

	report, err := compute(c.Request.Context(), accountID, from, to, displayModeQuery(c))
	if err != nil {
		respondReportError(c, logger, name, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBookResponse(report))
}

// getCommission godoc
// @Summary Extract commission legs from tagged groups
// @Description Scans posted groups carrying the given type tags in the period and reports the commission, customer and supplier legs of each
// @Tags reports
// @Produce json
// @Param fromDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param toDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Param typeTags query string true "Comma-separated group type tags to scan"
// @Param commissionAccountID query string true "Commission income account ID"
// @Param displayMode query string false "Set to 'document' to report document-currency amounts"
// @Success 200 {object} dto.CommissionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/commission [get]
func (h *reportingHandler) getCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	now := time.Now()
	from, ok := parseDateQuery(c, "fromDate", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "toDate", now)
	if !ok {
		return
	}

	commissionAccountID := c.Query("commissionAccountID")
	if commissionAccountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "commissionAccountID query parameter required"})
		return
	}

	var typeTags []string
	for _, tag := range strings.Split(c.Query("typeTags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			typeTags = append(typeTags, tag)
		}
	}
	if len(typeTags) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "typeTags query parameter required"})
		return
	}

	report, err := h.reportingService.Commission(c.Request.Context(), from, to, typeTags, commissionAccountID, displayModeQuery(c))
	if err != nil {
		respondReportError(c, logger, "commission", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionResponse(report))
}

// getZakat godoc
// @Summary Compute the zakat base and payable amount
// @Description Sums the closing balances of zakat-eligible accounts as of a date and applies the fixed zakat rate
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.ZakatResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/zakat [get]
func (h *reportingHandler) getZakat(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseDateQuery(c, "asOf", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.Zakat(c.Request.Context(), asOf)
	if err != nil {
		respondReportError(c, logger, "zakat", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToZakatResponse(report))
}
