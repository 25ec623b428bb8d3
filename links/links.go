// Package links builds the role-conditional hypermedia controls attached
// to API responses. Link sets are a pure function of the resource
// attributes and the caller's role set: identical inputs always produce
// the same links in the same order, and a missing role omits links rather
// than erroring.
package links

import (
	"fmt"
	"net/url"

	"trendline/models"
)

// Link is a hypermedia control describing a permitted follow-up action
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

const basePath = "/api/v1"

// HasRole reports whether the role set contains the given role
func HasRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// elevated reports whether the role set carries admin-grade access
func elevated(roles []models.Role) bool {
	return HasRole(roles, models.RoleAdmin) || HasRole(roles, models.RoleAdvancedUser)
}

// customerGrade reports whether the role set may act as a shopper. Grants
// are cumulative: elevated callers hold every customer capability, so an
// elevated caller's link set is always a superset of a customer's.
func customerGrade(roles []models.Role) bool {
	return HasRole(roles, models.RoleCustomer) || elevated(roles)
}

// ForProductList builds the links attached to each entry of a product
// list view
func ForProductList(productID uint, roles []models.Role) []Link {
	result := []Link{
		{
			Href:   fmt.Sprintf("%s/products/%d", basePath, productID),
			Rel:    "self",
			Method: "GET",
		},
	}

	if customerGrade(roles) {
		result = append(result, Link{
			Href:   basePath + "/orders",
			Rel:    "create-order",
			Method: "POST",
		})
	}

	return result
}

// ForSingleProduct builds the links attached to a single-product view.
// Filter-navigation links derive from the product's own attribute values.
func ForSingleProduct(productID uint, category, brand, gender, size, color string, roles []models.Role) []Link {
	result := []Link{
		{
			Href:   fmt.Sprintf("%s/products/%d", basePath, productID),
			Rel:    "self",
			Method: "GET",
		},
		{
			Href:   basePath + "/products",
			Rel:    "all-products",
			Method: "GET",
		},
	}

	if customerGrade(roles) {
		result = append(result,
			Link{
				Href:   fmt.Sprintf("%s/products/byCategory/%s", basePath, url.PathEscape(category)),
				Rel:    "category-products",
				Method: "GET",
			},
			Link{
				Href:   fmt.Sprintf("%s/products/byBrand/%s", basePath, url.PathEscape(brand)),
				Rel:    "brand-products",
				Method: "GET",
			},
			Link{
				Href:   fmt.Sprintf("%s/products/byGender/%s", basePath, url.PathEscape(gender)),
				Rel:    "gender-products",
				Method: "GET",
			},
			Link{
				Href:   fmt.Sprintf("%s/products/bySize/%s", basePath, url.PathEscape(size)),
				Rel:    "size-products",
				Method: "GET",
			},
			Link{
				Href:   fmt.Sprintf("%s/products/byColor/%s", basePath, url.PathEscape(color)),
				Rel:    "color-products",
				Method: "GET",
			},
		)
	}

	if elevated(roles) {
		result = append(result,
			Link{
				Href:   fmt.Sprintf("%s/products/%d", basePath, productID),
				Rel:    "update",
				Method: "PUT",
			},
			Link{
				Href:   fmt.Sprintf("%s/products/%d", basePath, productID),
				Rel:    "delete",
				Method: "DELETE",
			},
		)
	}

	return result
}

// ForOrder builds the links attached to an order view
func ForOrder(orderID uint, roles []models.Role) []Link {
	result := []Link{
		{
			Href:   fmt.Sprintf("%s/orders/%d", basePath, orderID),
			Rel:    "self",
			Method: "GET",
		},
		{
			Href:   fmt.Sprintf("%s/orders/%d/items", basePath, orderID),
			Rel:    "order-items",
			Method: "GET",
		},
	}

	if elevated(roles) {
		result = append(result,
			Link{
				Href:   fmt.Sprintf("%s/orders/%d/status", basePath, orderID),
				Rel:    "update-status",
				Method: "PUT",
			},
			Link{
				Href:   fmt.Sprintf("%s/orders/%d", basePath, orderID),
				Rel:    "delete",
				Method: "DELETE",
			},
		)
	}

	return result
}
