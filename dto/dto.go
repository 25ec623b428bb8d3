// Package dto holds the flattened API projections of the persisted
// entities, plus the request payloads the controllers bind against.
package dto

import (
	"time"

	"trendline/links"
	"trendline/models"
)

// ProductDTO is the API projection of a product with resolved catalog
// labels and the discount-adjusted final price
type ProductDTO struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	FinalPrice  float64      `json:"final_price"`
	Quantity    int          `json:"quantity"`
	Gender      string       `json:"gender"`
	Brand       string       `json:"brand"`
	Category    string       `json:"category"`
	Color       string       `json:"color"`
	Size        string       `json:"size"`
	Links       []links.Link `json:"links,omitempty"`
}

// NewProductDTO flattens a product with its preloaded associations
func NewProductDTO(p *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		FinalPrice:  p.FinalPrice(),
		Quantity:    p.Quantity,
		Gender:      p.Gender.String(),
		Brand:       p.Brand.Name,
		Category:    p.Category.Name,
		Color:       p.Color.Name,
		Size:        p.Size.Label,
	}
	return dto
}

// NewProductDTOs flattens a product list; an empty input yields an empty,
// non-nil slice so callers always serialize a JSON array
func NewProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, NewProductDTO(&products[i]))
	}
	return dtos
}

// OrderItemDTO is the API projection of an order line item
type OrderItemDTO struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderDTO is the API projection of an order
type OrderDTO struct {
	ID         uint           `json:"id"`
	CustomerID string         `json:"customer_id"`
	OrderDate  time.Time      `json:"order_date"`
	Status     string         `json:"status"`
	OrderItems []OrderItemDTO `json:"order_items"`
	Links      []links.Link   `json:"links,omitempty"`
}

// NewOrderDTO flattens an order and its items
func NewOrderDTO(o *models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return OrderDTO{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		OrderDate:  o.OrderDate,
		Status:     o.Status,
		OrderItems: items,
	}
}

// NewOrderDTOs flattens an order list
func NewOrderDTOs(orders []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, NewOrderDTO(&orders[i]))
	}
	return dtos
}

// CustomerDTO is the API projection of a customer record
type CustomerDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	OrderCount  int    `json:"order_count"`
}

// NewCustomerDTO flattens a customer with its preloaded user and orders
func NewCustomerDTO(c *models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:          c.ID,
		Email:       c.User.Email,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
		OrderCount:  len(c.Orders),
	}
}

// NewCustomerDTOs flattens a customer list
func NewCustomerDTOs(customers []models.Customer) []CustomerDTO {
	dtos := make([]CustomerDTO, 0, len(customers))
	for i := range customers {
		dtos = append(dtos, NewCustomerDTO(&customers[i]))
	}
	return dtos
}

// ProductQuantityDTO reports stock arithmetic for a product. Sold counts
// every order item referencing the product, whatever the order status.
type ProductQuantityDTO struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	InitialQuantity int    `json:"initial_quantity"`
	SoldQuantity    int    `json:"sold_quantity"`
	CurrentQuantity int    `json:"current_quantity"`
}

// SearchParams carries the optional conjunction filters for product search.
// Nil/empty fields impose no constraint.
type SearchParams struct {
	Category string   `form:"category"`
	Gender   string   `form:"gender"`
	Brand    string   `form:"brand"`
	PriceMin *float64 `form:"priceMin"`
	PriceMax *float64 `form:"priceMax"`
	Size     string   `form:"size"`
	Color    string   `form:"color"`
	InStock  *bool    `form:"inStock"`
}

// AddProductRequest is the product creation payload
type AddProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Quantity    int     `json:"quantity"`
	Gender      string  `json:"gender" binding:"required"`
	BrandID     uint    `json:"brand_id" binding:"required"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	ColorID     uint    `json:"color_id" binding:"required"`
	SizeID      uint    `json:"size_id" binding:"required"`
	DiscountID  *uint   `json:"discount_id"`
}

// EditProductRequest is the product update payload
type EditProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Gender      string  `json:"gender" binding:"required"`
	BrandID     uint    `json:"brand_id" binding:"required"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	ColorID     uint    `json:"color_id" binding:"required"`
	SizeID      uint    `json:"size_id" binding:"required"`
}

// CreateOrderRequest is the order creation payload; prices are
// caller-supplied and snapshotted as-is
type CreateOrderRequest struct {
	OrderItems []OrderItemDTO `json:"order_items" binding:"required,min=1"`
}

// AddDiscountRequest is the discount creation payload
type AddDiscountRequest struct {
	Name           string     `json:"name"`
	Amount         float64    `json:"amount"`
	Percentage     *float64   `json:"percentage"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// UpdateDiscountRequest is the partial discount update payload; nil fields
// keep their stored values
type UpdateDiscountRequest struct {
	Amount         *float64   `json:"amount"`
	Percentage     *float64   `json:"percentage"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// UpdateQuantityRequest is the stock overwrite payload
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateOrderStatusRequest is the order status overwrite payload
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateCustomerRequest is the customer profile update payload
type UpdateCustomerRequest struct {
	FirstName   string `json:"first_name" binding:"required,min=1,max=100"`
	LastName    string `json:"last_name" binding:"required,min=1,max=100"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// CatalogEntryRequest is the shared payload for brand/category/color/size
// create and update operations
type CatalogEntryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}
