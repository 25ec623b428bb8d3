package controllers

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"trendline/models"
	"trendline/repository"
	"trendline/utils"
)

// DownloadReport serves a stored report snapshot as a PDF or Excel
// attachment depending on the format query parameter (pdf by default)
func (rc *ReportController) DownloadReport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "pdf")
	utils.LogInfo("DownloadReport called id=%d format=%s", id, format)

	if format != "pdf" && format != "excel" {
		utils.BadRequest(c, "Invalid format", "format must be pdf or excel")
		return
	}

	report, err := rc.reports.GetByID(id)
	if err != nil {
		utils.LogError("DownloadReport: query failed id=%d: %v", id, err)
		utils.InternalServerError(c, "Failed to retrieve report", nil)
		return
	}
	if report == nil {
		utils.NotFound(c, "Report not found")
		return
	}

	var sales []repository.ProductSales
	if err := json.Unmarshal([]byte(report.ReportData), &sales); err != nil {
		utils.LogError("DownloadReport: stored data unreadable id=%d: %v", id, err)
		utils.InternalServerError(c, "Report data is unreadable", nil)
		return
	}

	if format == "excel" {
		rc.writeExcel(c, report, sales)
		return
	}
	rc.writePDF(c, report, sales)
}

func reportTitle(reportType models.ReportType) string {
	switch reportType {
	case models.ReportDailySales:
		return "Daily Sales Report"
	case models.ReportMonthlySales:
		return "Monthly Sales Report"
	case models.ReportTopProducts:
		return "Top Products Report"
	}
	return "Sales Report"
}

func (rc *ReportController) writeExcel(c *gin.Context, report *models.Report, sales []repository.ProductSales) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Report")
	if err != nil {
		utils.LogError("writeExcel: sheet creation failed: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", nil)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("TRENDLINE - " + reportTitle(report.ReportType))
	metaRow := sheet.AddRow()
	metaRow.AddCell().SetString("Generated: " + report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	sheet.AddRow() // spacing

	headers := []string{"Product ID", "Product Name", "Quantity Sold", "Revenue"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	var totalQuantity int
	var totalRevenue float64
	for _, s := range sales {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(s.ProductID))
		row.AddCell().SetString(s.ProductName)
		row.AddCell().SetInt(s.TotalQuantity)
		row.AddCell().SetFloat(s.TotalRevenue)
		totalQuantity += s.TotalQuantity
		totalRevenue += s.TotalRevenue
	}

	sheet.AddRow() // spacing
	totalRow := sheet.AddRow()
	totalRow.AddCell().SetString("Total")
	totalRow.AddCell().SetString("")
	totalRow.AddCell().SetInt(totalQuantity)
	totalRow.AddCell().SetFloat(totalRevenue)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%d.xlsx", report.ID))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("writeExcel: write failed: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", nil)
		return
	}
	utils.LogInfo("DownloadReport: Excel written id=%d", report.ID)
}

func (rc *ReportController) writePDF(c *gin.Context, report *models.Report, sales []repository.ProductSales) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "TRENDLINE - "+reportTitle(report.ReportType))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, "Generated: "+report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	pdf.Ln(12)

	headers := []string{"Product ID", "Product Name", "Quantity Sold", "Revenue"}
	colWidths := []float64{25, 90, 35, 35}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	var totalQuantity int
	var totalRevenue float64
	for _, s := range sales {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", s.ProductID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, s.ProductName, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%d", s.TotalQuantity), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%.2f", s.TotalRevenue), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
		totalQuantity += s.TotalQuantity
		totalRevenue += s.TotalRevenue
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(colWidths[0]+colWidths[1], 9, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colWidths[2], 9, fmt.Sprintf("%d", totalQuantity), "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[3], 9, fmt.Sprintf("%.2f", totalRevenue), "1", 0, "R", false, 0, "")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%d.pdf", report.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("writePDF: write failed: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", nil)
		return
	}
	utils.LogInfo("DownloadReport: PDF written id=%d", report.ID)
}
