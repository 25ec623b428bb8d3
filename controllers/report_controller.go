package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"trendline/models"
	"trendline/repository"
	"trendline/utils"
)

// ReportController handles report generation and retrieval. Every
// generation run stores a new snapshot; old snapshots stay readable.
type ReportController struct {
	reports repository.ReportRepository
}

// NewReportController creates the report controller
func NewReportController(reports repository.ReportRepository) *ReportController {
	return &ReportController{reports: reports}
}

// GenerateDailySalesReport aggregates today's completed orders
func (rc *ReportController) GenerateDailySalesReport(c *gin.Context) {
	utils.LogInfo("GenerateDailySalesReport called")
	rc.generate(c, models.ReportDailySales)
}

// GenerateMonthlySalesReport aggregates the current calendar month's
// completed orders
func (rc *ReportController) GenerateMonthlySalesReport(c *gin.Context) {
	utils.LogInfo("GenerateMonthlySalesReport called")
	rc.generate(c, models.ReportMonthlySales)
}

// GenerateTopProductsReport ranks all-time sales by quantity
func (rc *ReportController) GenerateTopProductsReport(c *gin.Context) {
	utils.LogInfo("GenerateTopProductsReport called")
	rc.generate(c, models.ReportTopProducts)
}

func (rc *ReportController) generate(c *gin.Context, reportType models.ReportType) {
	report, err := rc.reports.Generate(reportType, time.Now())
	if err != nil {
		utils.LogError("generate: %s failed: %v", reportType, err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	utils.LogInfo("generate: stored report id=%d type=%s", report.ID, reportType)
	utils.Created(c, "Report generated", report)
}

// GetReports lists stored report snapshots, newest first
func (rc *ReportController) GetReports(c *gin.Context) {
	utils.LogInfo("GetReports called")

	reports, err := rc.reports.List()
	if err != nil {
		utils.LogError("GetReports: query failed: %v", err)
		utils.InternalServerError(c, "Failed to retrieve reports", nil)
		return
	}
	utils.Success(c, "Reports retrieved", reports)
}

// GetReport returns one stored report snapshot
func (rc *ReportController) GetReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	utils.LogInfo("GetReport called id=%d", id)

	report, err := rc.reports.GetByID(id)
	if err != nil {
		utils.LogError("GetReport: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve report", nil)
		return
	}
	if report == nil {
		utils.NotFound(c, "Report not found")
		return
	}
	utils.Success(c, "Report retrieved", report)
}
