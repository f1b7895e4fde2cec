package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/lacson1/UK-property-management/internal/errors"
	"github.com/lacson1/UK-property-management/internal/export"
	"github.com/lacson1/UK-property-management/internal/finance"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/services"
)

// FinanceHandler handles transactions, reports and tax summaries.
type FinanceHandler struct {
	service services.TransactionService
	exports services.ExportService
}

// NewFinanceHandler creates a new FinanceHandler instance.
func NewFinanceHandler(service services.TransactionService, exports services.ExportService) *FinanceHandler {
	return &FinanceHandler{service: service, exports: exports}
}

// ReportQuery holds the query parameters of GET /finance/report.
type ReportQuery struct {
	PropertyID string `form:"propertyId"`
	Period     string `form:"period" binding:"required,oneof=monthly annual tax-year"`
	Year       int    `form:"year"`
	Month      int    `form:"month" binding:"omitempty,min=1,max=12"`
	TaxYear    string `form:"taxYear"`
}

// TaxYearsQuery holds the query parameters of GET /finance/tax-years.
type TaxYearsQuery struct {
	Count int `form:"count" binding:"omitempty,min=1,max=20"`
}

// TaxSummaryRequest is the body of POST /finance/tax-summary.
type TaxSummaryRequest struct {
	TaxYear    string `json:"taxYear" binding:"required"`
	PropertyID string `json:"propertyId"`
}

// TaxSummaryPDFRequest is the body of POST /finance/tax-summary/pdf.
type TaxSummaryPDFRequest struct {
	TaxYear       string `json:"taxYear" binding:"required"`
	PropertyID    string `json:"propertyId"`
	PropertyLabel string `json:"propertyLabel" binding:"required"`
	Summary       string `json:"summary" binding:"required"`
}

// TaxYearView is a tax year with its boundaries.
type TaxYearView struct {
	Label string      `json:"label"`
	Start models.Date `json:"start"`
	End   models.Date `json:"end"`
}

// List handles GET /api/v1/transactions, newest first.
func (h *FinanceHandler) List(c *gin.Context) {
	var filter PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.BindError(c, err, "Invalid query parameters")
		return
	}
	c.JSON(http.StatusOK, list(h.service.List(c.Request.Context(), filter.PropertyID)))
}

// Create handles POST /api/v1/transactions. Income matching a property's
// rent settles its rent status.
func (h *FinanceHandler) Create(c *gin.Context) {
	var req services.TransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid transaction")
		return
	}

	tx, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// Summary handles GET /api/v1/finance/summary.
func (h *FinanceHandler) Summary(c *gin.Context) {
	var filter PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.BindError(c, err, "Invalid query parameters")
		return
	}
	c.JSON(http.StatusOK, h.service.Summary(c.Request.Context(), filter.PropertyID))
}

// CashFlow handles GET /api/v1/finance/cash-flow: the last twelve months,
// oldest first.
func (h *FinanceHandler) CashFlow(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.service.CashFlow(c.Request.Context())))
}

// Report handles GET /api/v1/finance/report.
func (h *FinanceHandler) Report(c *gin.Context) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.BindError(c, err, "Invalid report parameters")
		return
	}

	filter := finance.ReportFilter{
		PropertyID: q.PropertyID,
		Period:     finance.Period(q.Period),
		Year:       q.Year,
		Month:      time.Month(q.Month),
	}
	if filter.Period == finance.PeriodTaxYear {
		ty, err := finance.ParseTaxYear(q.TaxYear)
		if err != nil {
			apierrors.BadRequest(c, "Invalid tax year", map[string]interface{}{"taxYear": q.TaxYear})
			return
		}
		filter.TaxYear = ty
	}

	report, err := h.service.Report(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to build report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Years handles GET /api/v1/finance/years.
func (h *FinanceHandler) Years(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.service.AvailableYears(c.Request.Context())))
}

// TaxYears handles GET /api/v1/finance/tax-years, newest first.
func (h *FinanceHandler) TaxYears(c *gin.Context) {
	var q TaxYearsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.BindError(c, err, "Invalid query parameters")
		return
	}

	years := h.service.TaxYears(c.Request.Context(), q.Count)
	views := make([]TaxYearView, 0, len(years))
	for _, ty := range years {
		views = append(views, TaxYearView{Label: ty.Label(), Start: ty.Start(), End: ty.End()})
	}
	c.JSON(http.StatusOK, list(views))
}

// TaxSummary handles POST /api/v1/finance/tax-summary.
func (h *FinanceHandler) TaxSummary(c *gin.Context) {
	var req TaxSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid tax summary request")
		return
	}

	summary, err := h.service.TaxSummary(c.Request.Context(), req.TaxYear, req.PropertyID)
	if err != nil {
		respondError(c, err, "Failed to generate tax summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// TaxSummaryPDF handles POST /api/v1/finance/tax-summary/pdf. It renders a
// summary the client already holds, so no model call is made.
func (h *FinanceHandler) TaxSummaryPDF(c *gin.Context) {
	var req TaxSummaryPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid tax summary")
		return
	}

	file, err := h.exports.TaxSummaryPDF(c.Request.Context(), export.TaxSummary{
		PropertyID:    req.PropertyID,
		PropertyLabel: req.PropertyLabel,
		TaxYear:       req.TaxYear,
		Body:          req.Summary,
	})
	if err != nil {
		respondError(c, err, "Failed to render tax summary")
		return
	}
	attachment(c, file.FileName, file.ContentType, file.Data)
}
