package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trendline/models"
)

func TestNewProductDTOFlattensAssociations(t *testing.T) {
	pct := 10.0
	p := models.Product{
		Name:        "Runner",
		Description: "Light running shoe",
		Price:       100,
		Quantity:    4,
		Gender:      models.GenderFemale,
		Brand:       models.Brand{Name: "Generic"},
		Category:    models.Category{Name: "Shoes"},
		Color:       models.Color{Name: "White"},
		Size:        models.Size{Label: "M"},
		Discount:    &models.Discount{Percentage: &pct},
	}
	p.ID = 11

	d := NewProductDTO(&p)

	assert.Equal(t, uint(11), d.ID)
	assert.Equal(t, "Runner", d.Name)
	assert.Equal(t, 100.0, d.Price)
	assert.InDelta(t, 90.0, d.FinalPrice, 1e-9)
	assert.Equal(t, "Female", d.Gender)
	assert.Equal(t, "Generic", d.Brand)
	assert.Equal(t, "Shoes", d.Category)
	assert.Equal(t, "White", d.Color)
	assert.Equal(t, "M", d.Size)
	assert.Nil(t, d.Links)
}

func TestNewProductDTOsEmptyIsNonNil(t *testing.T) {
	dtos := NewProductDTOs(nil)
	assert.NotNil(t, dtos)
	assert.Len(t, dtos, 0)
}

func TestNewOrderDTO(t *testing.T) {
	placed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	o := models.Order{
		ID:         5,
		CustomerID: "cust-1",
		OrderDate:  placed,
		Status:     models.OrderStatusPending,
		OrderItems: []models.OrderItem{
			{ProductID: 1, Quantity: 2, Price: 49.5},
			{ProductID: 2, Quantity: 1, Price: 100},
		},
	}

	d := NewOrderDTO(&o)

	assert.Equal(t, uint(5), d.ID)
	assert.Equal(t, "cust-1", d.CustomerID)
	assert.Equal(t, placed, d.OrderDate)
	assert.Equal(t, "Pending", d.Status)
	assert.Len(t, d.OrderItems, 2)
	assert.Equal(t, uint(1), d.OrderItems[0].ProductID)
	assert.Equal(t, 49.5, d.OrderItems[0].Price)
}

func TestNewOrderDTOEmptyItemsNonNil(t *testing.T) {
	d := NewOrderDTO(&models.Order{ID: 1})
	assert.NotNil(t, d.OrderItems)
	assert.Len(t, d.OrderItems, 0)
}

func TestNewCustomerDTO(t *testing.T) {
	c := models.Customer{
		ID:          "cust-1",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Address:     "1 Analytical Way",
		PhoneNumber: "555-0100",
		User:        models.User{Email: "ada@example.com"},
		Orders:      []models.Order{{ID: 1}, {ID: 2}},
	}

	d := NewCustomerDTO(&c)

	assert.Equal(t, "cust-1", d.ID)
	assert.Equal(t, "ada@example.com", d.Email)
	assert.Equal(t, "Ada", d.FirstName)
	assert.Equal(t, 2, d.OrderCount)
}
