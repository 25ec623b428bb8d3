package repository

import (
	"errors"

	"gorm.io/gorm"

	"trendline/models"
)

// CatalogRepository manages the taxonomy entities products reference:
// brands, categories, colors and sizes. Names are unique per entity;
// duplicate inserts surface the database constraint error.
type CatalogRepository interface {
	GetBrands() ([]models.Brand, error)
	GetBrandByID(id uint) (*models.Brand, error)
	CreateBrand(brand *models.Brand) error
	UpdateBrand(brand *models.Brand) error
	DeleteBrand(id uint) error

	GetCategories() ([]models.Category, error)
	GetCategoryByID(id uint) (*models.Category, error)
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	DeleteCategory(id uint) error

	GetColors() ([]models.Color, error)
	GetColorByID(id uint) (*models.Color, error)
	CreateColor(color *models.Color) error
	UpdateColor(color *models.Color) error
	DeleteColor(id uint) error

	GetSizes() ([]models.Size, error)
	GetSizeByID(id uint) (*models.Size, error)
	CreateSize(size *models.Size) error
	UpdateSize(size *models.Size) error
	DeleteSize(id uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates the GORM-backed catalog repository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetBrands() ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Order("name").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *catalogRepository) GetBrandByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

func (r *catalogRepository) CreateBrand(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

func (r *catalogRepository) UpdateBrand(brand *models.Brand) error {
	return r.db.Save(brand).Error
}

func (r *catalogRepository) DeleteBrand(id uint) error {
	return r.db.Delete(&models.Brand{}, id).Error
}

func (r *catalogRepository) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepository) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *catalogRepository) CreateCategory(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *catalogRepository) UpdateCategory(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *catalogRepository) DeleteCategory(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

func (r *catalogRepository) GetColors() ([]models.Color, error) {
	var colors []models.Color
	if err := r.db.Order("name").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *catalogRepository) GetColorByID(id uint) (*models.Color, error) {
	var color models.Color
	if err := r.db.First(&color, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &color, nil
}

func (r *catalogRepository) CreateColor(color *models.Color) error {
	return r.db.Create(color).Error
}

func (r *catalogRepository) UpdateColor(color *models.Color) error {
	return r.db.Save(color).Error
}

func (r *catalogRepository) DeleteColor(id uint) error {
	return r.db.Delete(&models.Color{}, id).Error
}

func (r *catalogRepository) GetSizes() ([]models.Size, error) {
	var sizes []models.Size
	if err := r.db.Order("label").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *catalogRepository) GetSizeByID(id uint) (*models.Size, error) {
	var size models.Size
	if err := r.db.First(&size, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &size, nil
}

func (r *catalogRepository) CreateSize(size *models.Size) error {
	return r.db.Create(size).Error
}

func (r *catalogRepository) UpdateSize(size *models.Size) error {
	return r.db.Save(size).Error
}

func (r *catalogRepository) DeleteSize(id uint) error {
	return r.db.Delete(&models.Size{}, id).Error
}
