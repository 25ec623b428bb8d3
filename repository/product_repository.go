// Package repository is the query layer: one interface per component,
// each backed by a GORM implementation and composed explicitly at startup.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"trendline/dto"
	"trendline/models"
)

// ProductRepository is the product query/aggregation component. Filter
// operations return empty slices, never errors, when nothing matches;
// callers decide whether that is a "not found" condition.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	FindByCategory(category string) ([]models.Product, error)
	FindByBrand(brand string) ([]models.Product, error)
	FindByGender(gender string) ([]models.Product, error)
	FindByPriceRange(minPrice, maxPrice float64) ([]models.Product, error)
	FindBySize(size string) ([]models.Product, error)
	FindByColor(color string) ([]models.Product, error)
	CountByCategory(category string) (int64, error)
	CountByBrand(brand string) (int64, error)
	CountAvailable() (int64, error)
	CountOutOfStock() (int64, error)
	Search(params dto.SearchParams) ([]models.Product, error)
	GetQuantity(id uint) (*dto.ProductQuantityDTO, error)
	UpdateQuantity(id uint, quantity int) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates the GORM-backed product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// withAssociations eagerly loads the catalog references and discount for
// each product in a single batched pass per association
func (r *productRepository) withAssociations() *gorm.DB {
	return r.db.
		Preload("Brand").
		Preload("Category").
		Preload("Color").
		Preload("Size").
		Preload("Discount")
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.withAssociations().Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.withAssociations().First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

func (r *productRepository) FindByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	err := r.withAssociations().
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.name = ?", category).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByBrand(brand string) ([]models.Product, error) {
	var products []models.Product
	err := r.withAssociations().
		Joins("JOIN brands ON brands.id = products.brand_id").
		Where("brands.name = ?", brand).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByGender(gender string) ([]models.Product, error) {
	// An unknown gender value matches nothing rather than erroring
	parsed, ok := models.ParseGender(gender)
	if !ok {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := r.withAssociations().Where("gender = ?", parsed).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByPriceRange(minPrice, maxPrice float64) ([]models.Product, error) {
	var products []models.Product
	err := r.withAssociations().
		Where("price >= ? AND price <= ?", minPrice, maxPrice).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindBySize(size string) ([]models.Product, error) {
	var products []models.Product
	err := r.withAssociations().
		Joins("JOIN sizes ON sizes.id = products.size_id").
		Where("sizes.label = ?", size).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByColor(color string) ([]models.Product, error) {
	var products []models.Product
	err := r.withAssociations().
		Joins("JOIN colors ON colors.id = products.color_id").
		Where("colors.name = ?", color).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) CountByCategory(category string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.name = ?", category).
		Count(&count).Error
	return count, err
}

func (r *productRepository) CountByBrand(brand string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Joins("JOIN brands ON brands.id = products.brand_id").
		Where("brands.name = ?", brand).
		Count(&count).Error
	return count, err
}

func (r *productRepository) CountAvailable() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("quantity > 0").Count(&count).Error
	return count, err
}

func (r *productRepository) CountOutOfStock() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("quantity = 0").Count(&count).Error
	return count, err
}

// Search narrows the catalog by conjunction of every present filter field;
// absent fields impose no constraint.
func (r *productRepository) Search(params dto.SearchParams) ([]models.Product, error) {
	query := r.withAssociations()

	if params.Category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", params.Category)
	}
	if params.Gender != "" {
		parsed, ok := models.ParseGender(params.Gender)
		if !ok {
			return []models.Product{}, nil
		}
		query = query.Where("gender = ?", parsed)
	}
	if params.Brand != "" {
		query = query.
			Joins("JOIN brands ON brands.id = products.brand_id").
			Where("brands.name = ?", params.Brand)
	}
	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}
	if params.Size != "" {
		query = query.
			Joins("JOIN sizes ON sizes.id = products.size_id").
			Where("sizes.label = ?", params.Size)
	}
	if params.Color != "" {
		query = query.
			Joins("JOIN colors ON colors.id = products.color_id").
			Where("colors.name = ?", params.Color)
	}
	if params.InStock != nil {
		if *params.InStock {
			query = query.Where("quantity > 0")
		} else {
			query = query.Where("quantity = 0")
		}
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetQuantity reports stock arithmetic for a product. Sold sums every
// order item referencing the product regardless of the order's status, so
// current = initial - sold.
func (r *productRepository) GetQuantity(id uint) (*dto.ProductQuantityDTO, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var sold int
	err := r.db.Model(&models.OrderItem{}).
		Where("product_id = ?", id).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sold).Error
	if err != nil {
		return nil, err
	}

	return &dto.ProductQuantityDTO{
		ID:              product.ID,
		Name:            product.Name,
		InitialQuantity: product.Quantity,
		SoldQuantity:    sold,
		CurrentQuantity: product.Quantity - sold,
	}, nil
}

// UpdateQuantity overwrites the stored quantity unconditionally; the
// non-negative check belongs to the boundary, not here
func (r *productRepository) UpdateQuantity(id uint, quantity int) error {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
