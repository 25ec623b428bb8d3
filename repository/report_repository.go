package repository

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"trendline/models"
)

const topProductsLimit = 10

// ProductSales is one row of an aggregated report
type ProductSales struct {
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// salesRow is one order item joined with its product, as read from the store
type salesRow struct {
	ProductID   uint
	ProductName string
	Quantity    int
	Price       float64
}

// ReportRepository generates and stores aggregation snapshots. Each Generate
// call writes a new Report row; earlier snapshots stay untouched.
type ReportRepository interface {
	Generate(reportType models.ReportType, now time.Time) (*models.Report, error)
	GetByID(id uint) (*models.Report, error)
	List() ([]models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates the GORM-backed report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Generate runs the aggregation for reportType and persists the result.
// Daily covers the current UTC day and monthly the current UTC calendar
// month, both over completed orders only. Top products ranks all-time
// sales across every order status.
func (r *reportRepository) Generate(reportType models.ReportType, now time.Time) (*models.Report, error) {
	now = now.UTC()

	var rows []salesRow
	var err error

	switch reportType {
	case models.ReportDailySales:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		rows, err = r.completedSales(start, start.AddDate(0, 0, 1))
	case models.ReportMonthlySales:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		rows, err = r.completedSales(start, start.AddDate(0, 1, 0))
	case models.ReportTopProducts:
		rows, err = r.allSales()
	default:
		return nil, errors.New("unknown report type")
	}
	if err != nil {
		return nil, err
	}

	sales := aggregateSales(rows)
	if reportType == models.ReportTopProducts && len(sales) > topProductsLimit {
		sales = sales[:topProductsLimit]
	}

	data, err := json.Marshal(sales)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ReportType:  reportType,
		GeneratedAt: now,
		ReportData:  string(data),
	}
	if err := r.db.Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (r *reportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List() ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.Order("generated_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// completedSales reads the items of completed orders placed in [start, end)
func (r *reportRepository) completedSales(start, end time.Time) ([]salesRow, error) {
	var rows []salesRow
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, products.name AS product_name, order_items.quantity AS quantity, order_items.price AS price").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.status = ?", models.OrderStatusCompleted).
		Where("orders.order_date >= ? AND orders.order_date < ?", start, end).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// allSales reads every order item regardless of order status
func (r *reportRepository) allSales() ([]salesRow, error) {
	var rows []salesRow
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, products.name AS product_name, order_items.quantity AS quantity, order_items.price AS price").
		Joins("JOIN products ON products.id = order_items.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// aggregateSales groups rows per product, summing quantity and revenue
// (quantity times the snapshotted unit price), sorted by quantity
// descending with product id as the tiebreaker.
func aggregateSales(rows []salesRow) []ProductSales {
	byProduct := make(map[uint]*ProductSales)
	for _, row := range rows {
		entry, ok := byProduct[row.ProductID]
		if !ok {
			entry = &ProductSales{ProductID: row.ProductID, ProductName: row.ProductName}
			byProduct[row.ProductID] = entry
		}
		entry.TotalQuantity += row.Quantity
		entry.TotalRevenue += float64(row.Quantity) * row.Price
	}

	sales := make([]ProductSales, 0, len(byProduct))
	for _, entry := range byProduct {
		sales = append(sales, *entry)
	}
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].TotalQuantity != sales[j].TotalQuantity {
			return sales[i].TotalQuantity > sales[j].TotalQuantity
		}
		return sales[i].ProductID < sales[j].ProductID
	})
	return sales
}
