package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Gender is the closed set of product gender values
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderNeutral Gender = "Neutral"
)

// ParseGender matches a gender value case-insensitively
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(s) {
	case "male":
		return GenderMale, true
	case "female":
		return GenderFemale, true
	case "neutral":
		return GenderNeutral, true
	}
	return "", false
}

func (g Gender) String() string {
	return string(g)
}

// Role is the closed set of API roles carried in token claims
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleAdvancedUser Role = "Advanced User"
	RoleSimpleUser   Role = "Simple User"
	RoleCustomer     Role = "Customer"
)

// ParseRole matches a role value case-insensitively
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(s) {
	case "admin":
		return RoleAdmin, true
	case "advanced user":
		return RoleAdvancedUser, true
	case "simple user":
		return RoleSimpleUser, true
	case "customer":
		return RoleCustomer, true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}

// Elevated reports whether the role may perform admin-grade mutations
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleAdvancedUser
}

// User represents an account that can authenticate against the API
type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `gorm:"default:'Customer'" json:"role"`
}

// Brand represents a product brand
type Brand struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// Color represents a product color
type Color struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// Size represents a product size
type Size struct {
	gorm.Model
	Label string `json:"label" gorm:"uniqueIndex;not null"`
}

// Discount represents a percentage or fixed-amount price reduction
type Discount struct {
	gorm.Model
	Name           string     `json:"name"`
	Amount         float64    `json:"amount"`
	Percentage     *float64   `json:"percentage"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// Active reports whether the discount has not yet expired
func (d *Discount) Active(now time.Time) bool {
	return d.ExpirationDate == nil || !d.ExpirationDate.Before(now)
}

// Product represents an item in the catalog
type Product struct {
	gorm.Model
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Gender      Gender    `json:"gender"`
	BrandID     uint      `json:"brand_id"`
	Brand       Brand     `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	CategoryID  uint      `json:"category_id"`
	Category    Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ColorID     uint      `json:"color_id"`
	Color       Color     `json:"color,omitempty" gorm:"foreignKey:ColorID"`
	SizeID      uint      `json:"size_id"`
	Size        Size      `json:"size,omitempty" gorm:"foreignKey:SizeID"`
	DiscountID  *uint     `json:"discount_id"`
	Discount    *Discount `json:"discount,omitempty" gorm:"foreignKey:DiscountID"`
}

// FinalPrice applies the product's discount, if any and still active.
// Percentage takes precedence over a fixed amount. The result is not
// clamped: an amount larger than the price goes negative.
func (p *Product) FinalPrice() float64 {
	if p.Discount == nil || !p.Discount.Active(time.Now().UTC()) {
		return p.Price
	}

	if p.Discount.Percentage != nil {
		return p.Price * (1 - *p.Discount.Percentage/100)
	}
	if p.Discount.Amount > 0 {
		return p.Price - p.Discount.Amount
	}

	return p.Price
}

// Customer represents the 1:1 customer record behind a user account
type Customer struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	Orders      []Order   `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
