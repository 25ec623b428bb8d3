package models

import (
	"strings"
	"time"
)

// ReportType is the closed set of report kinds
type ReportType string

const (
	ReportDailySales   ReportType = "DailySales"
	ReportMonthlySales ReportType = "MonthlySales"
	ReportTopProducts  ReportType = "TopProducts"
)

// ParseReportType matches a report type case-insensitively
func ParseReportType(s string) (ReportType, bool) {
	switch strings.ToLower(s) {
	case "dailysales", "daily-sales":
		return ReportDailySales, true
	case "monthlysales", "monthly-sales":
		return ReportMonthlySales, true
	case "topproducts", "top-products":
		return ReportTopProducts, true
	}
	return "", false
}

// Report is a write-once snapshot of an aggregation run. ReportData holds the
// serialized result list; prior reports are never overwritten or merged.
type Report struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ReportType  ReportType `json:"report_type"`
	GeneratedAt time.Time  `json:"generated_at"`
	ReportData  string     `json:"report_data"`
}
