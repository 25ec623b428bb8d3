package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trendline/dto"
	"trendline/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Brand{},
		&models.Category{},
		&models.Color{},
		&models.Size{},
		&models.Discount{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Brand, models.Category, models.Color, models.Size) {
	t.Helper()
	brand := models.Brand{Name: "Acme"}
	category := models.Category{Name: "Tops"}
	color := models.Color{Name: "Black"}
	size := models.Size{Label: "M"}
	require.NoError(t, db.Create(&brand).Error)
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&color).Error)
	require.NoError(t, db.Create(&size).Error)
	return brand, category, color, size
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, quantity int) models.Product {
	t.Helper()
	brand, category, color, size := seedCatalog(t, db)
	product := models.Product{
		Name:       name,
		Price:      price,
		Quantity:   quantity,
		Gender:     models.GenderNeutral,
		BrandID:    brand.ID,
		CategoryID: category.ID,
		ColorID:    color.ID,
		SizeID:     size.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestFindByPriceRange(t *testing.T) {
	db := openTestDB(t)
	brand, category, color, size := seedCatalog(t, db)
	for name, price := range map[string]float64{"Cheap Tee": 40, "Pricey Tee": 90} {
		require.NoError(t, db.Create(&models.Product{
			Name: name, Price: price, Quantity: 1, Gender: models.GenderNeutral,
			BrandID: brand.ID, CategoryID: category.ID, ColorID: color.ID, SizeID: size.ID,
		}).Error)
	}
	repo := NewProductRepository(db)

	products, err := repo.FindByPriceRange(50, 100)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Pricey Tee", products[0].Name)

	// Inverted bounds match nothing; they are not an error
	products, err = repo.FindByPriceRange(100, 50)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSearchWithoutFiltersReturnsFullCatalog(t *testing.T) {
	db := openTestDB(t)
	brand, category, color, size := seedCatalog(t, db)
	for _, p := range []struct {
		name     string
		quantity int
	}{{"Tee", 5}, {"Hoodie", 3}, {"Sold Out Cap", 0}} {
		require.NoError(t, db.Create(&models.Product{
			Name: p.name, Price: 10, Quantity: p.quantity, Gender: models.GenderNeutral,
			BrandID: brand.ID, CategoryID: category.ID, ColorID: color.ID, SizeID: size.ID,
		}).Error)
	}
	repo := NewProductRepository(db)

	products, err := repo.Search(dto.SearchParams{})
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestSearchInStockExcludesZeroQuantity(t *testing.T) {
	db := openTestDB(t)
	brand, category, color, size := seedCatalog(t, db)
	for _, p := range []struct {
		name     string
		quantity int
	}{{"Tee", 5}, {"Sold Out Cap", 0}} {
		require.NoError(t, db.Create(&models.Product{
			Name: p.name, Price: 10, Quantity: p.quantity, Gender: models.GenderNeutral,
			BrandID: brand.ID, CategoryID: category.ID, ColorID: color.ID, SizeID: size.ID,
		}).Error)
	}
	repo := NewProductRepository(db)

	inStock := true
	products, err := repo.Search(dto.SearchParams{InStock: &inStock})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tee", products[0].Name)

	inStock = false
	products, err = repo.Search(dto.SearchParams{InStock: &inStock})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Sold Out Cap", products[0].Name)
}

func TestGetQuantityCountsSalesRegardlessOfOrderStatus(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Tee", 25, 10)
	require.NoError(t, db.Create(&models.Customer{ID: "cust-1", UserID: 1}).Error)
	require.NoError(t, db.Create(&models.Order{
		CustomerID: "cust-1",
		Status:     models.OrderStatusPending,
		OrderItems: []models.OrderItem{{ProductID: product.ID, Quantity: 2, Price: 25}},
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		CustomerID: "cust-1",
		Status:     models.OrderStatusCancelled,
		OrderItems: []models.OrderItem{{ProductID: product.ID, Quantity: 3, Price: 25}},
	}).Error)
	repo := NewProductRepository(db)

	report, err := repo.GetQuantity(product.ID)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 10, report.InitialQuantity)
	assert.Equal(t, 5, report.SoldQuantity)
	assert.Equal(t, 5, report.CurrentQuantity)
}

func TestUpdateQuantityOverwritesStock(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Tee", 25, 10)
	require.NoError(t, db.Create(&models.Customer{ID: "cust-1", UserID: 1}).Error)
	require.NoError(t, db.Create(&models.Order{
		CustomerID: "cust-1",
		Status:     models.OrderStatusPending,
		OrderItems: []models.OrderItem{{ProductID: product.ID, Quantity: 4, Price: 25}},
	}).Error)
	repo := NewProductRepository(db)

	require.NoError(t, repo.UpdateQuantity(product.ID, 20))

	report, err := repo.GetQuantity(product.ID)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 20, report.InitialQuantity)
	assert.Equal(t, 4, report.SoldQuantity)
	assert.Equal(t, 16, report.CurrentQuantity)
}

func TestUpdateQuantityUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepository(db)

	err := repo.UpdateQuantity(999, 5)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
