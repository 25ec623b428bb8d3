package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"trendline/models"
)

// OrderRepository is the order aggregation component
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	ByStatus(status string) ([]models.Order, error)
	ByDateRange(start, end time.Time) ([]models.Order, error)
	ByCustomerID(customerID string) ([]models.Order, error)
	ItemsByOrderID(orderID uint) ([]models.OrderItem, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the GORM-backed order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) withItems() *gorm.DB {
	return r.db.Preload("OrderItems").Preload("OrderItems.Product")
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.withItems().Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withItems().First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create persists the order and all of its items in one transaction so a
// failure never leaves an order without items
func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// UpdateStatus overwrites the status as free text; there is no validation
// of legal transitions
func (r *orderRepository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

func (r *orderRepository) ByStatus(status string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.withItems().Where("status = ?", status).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ByDateRange returns orders with inclusive bounds; callers normalize the
// bounds to UTC before the query
func (r *orderRepository) ByDateRange(start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.withItems().
		Where("order_date >= ? AND order_date <= ?", start.UTC(), end.UTC()).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ByCustomerID(customerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.withItems().Where("customer_id = ?", customerID).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ItemsByOrderID(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.Preload("Product").Where("order_id = ?", orderID).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
