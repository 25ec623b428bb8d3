package repository

import (
	"errors"

	"gorm.io/gorm"

	"trendline/models"
)

// DiscountRepository manages discount definitions
type DiscountRepository interface {
	GetAll() ([]models.Discount, error)
	GetByID(id uint) (*models.Discount, error)
	Create(discount *models.Discount) error
	Update(discount *models.Discount) error
	Delete(id uint) error
}

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates the GORM-backed discount repository
func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) GetAll() ([]models.Discount, error) {
	var discounts []models.Discount
	if err := r.db.Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *discountRepository) GetByID(id uint) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.First(&discount, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) Create(discount *models.Discount) error {
	return r.db.Create(discount).Error
}

func (r *discountRepository) Update(discount *models.Discount) error {
	return r.db.Save(discount).Error
}

func (r *discountRepository) Delete(id uint) error {
	return r.db.Delete(&models.Discount{}, id).Error
}
