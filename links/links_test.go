package links

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trendline/models"
)

func rels(ls []Link) []string {
	result := make([]string, len(ls))
	for i, l := range ls {
		result[i] = l.Rel
	}
	return result
}

func contains(ls []Link, rel string) bool {
	for _, l := range ls {
		if l.Rel == rel {
			return true
		}
	}
	return false
}

// isSuperset reports whether every link in sub also appears in super
func isSuperset(super, sub []Link) bool {
	for _, l := range sub {
		found := false
		for _, s := range super {
			if s == l {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestForProductListCustomer(t *testing.T) {
	ls := ForProductList(42, []models.Role{models.RoleCustomer})

	assert.Equal(t, []string{"self", "create-order"}, rels(ls))
	assert.Equal(t, "/api/v1/products/42", ls[0].Href)
	assert.Equal(t, "GET", ls[0].Method)
	assert.Equal(t, "POST", ls[1].Method)
}

func TestForProductListSimpleUser(t *testing.T) {
	ls := ForProductList(42, []models.Role{models.RoleSimpleUser})

	assert.Equal(t, []string{"self"}, rels(ls))
}

func TestForProductListDeterministic(t *testing.T) {
	roles := []models.Role{models.RoleAdmin}
	first := ForProductList(7, roles)
	second := ForProductList(7, roles)

	assert.Equal(t, first, second)
}

func TestForSingleProductCustomer(t *testing.T) {
	ls := ForSingleProduct(3, "Shoes", "Generic", "Male", "M", "Black", []models.Role{models.RoleCustomer})

	assert.Equal(t, []string{
		"self", "all-products",
		"category-products", "brand-products", "gender-products",
		"size-products", "color-products",
	}, rels(ls))
	assert.False(t, contains(ls, "update"))
	assert.False(t, contains(ls, "delete"))
}

func TestForSingleProductElevatedSupersetOfCustomer(t *testing.T) {
	customer := ForSingleProduct(3, "Shoes", "Generic", "Male", "M", "Black", []models.Role{models.RoleCustomer})
	admin := ForSingleProduct(3, "Shoes", "Generic", "Male", "M", "Black", []models.Role{models.RoleAdmin})
	advanced := ForSingleProduct(3, "Shoes", "Generic", "Male", "M", "Black", []models.Role{models.RoleAdvancedUser})

	assert.True(t, isSuperset(admin, customer))
	assert.True(t, isSuperset(advanced, customer))
	assert.True(t, contains(admin, "update"))
	assert.True(t, contains(admin, "delete"))
}

func TestForSingleProductEscapesAttributeValues(t *testing.T) {
	ls := ForSingleProduct(3, "Hats & Caps", "A/B", "Male", "M", "Black", []models.Role{models.RoleCustomer})

	var categoryHref, brandHref string
	for _, l := range ls {
		switch l.Rel {
		case "category-products":
			categoryHref = l.Href
		case "brand-products":
			brandHref = l.Href
		}
	}
	assert.Equal(t, "/api/v1/products/byCategory/Hats%20&%20Caps", categoryHref)
	assert.Equal(t, "/api/v1/products/byBrand/A%2FB", brandHref)
}

func TestForSingleProductNoRoles(t *testing.T) {
	ls := ForSingleProduct(3, "Shoes", "Generic", "Male", "M", "Black", nil)

	assert.Equal(t, []string{"self", "all-products"}, rels(ls))
}

func TestForOrder(t *testing.T) {
	customer := ForOrder(9, []models.Role{models.RoleCustomer})
	assert.Equal(t, []string{"self", "order-items"}, rels(customer))

	admin := ForOrder(9, []models.Role{models.RoleAdmin})
	assert.Equal(t, []string{"self", "order-items", "update-status", "delete"}, rels(admin))
	assert.True(t, isSuperset(admin, customer))

	assert.Equal(t, "/api/v1/orders/9/status", admin[2].Href)
	assert.Equal(t, "PUT", admin[2].Method)
}

func TestHasRole(t *testing.T) {
	roles := []models.Role{models.RoleCustomer, models.RoleSimpleUser}
	assert.True(t, HasRole(roles, models.RoleCustomer))
	assert.False(t, HasRole(roles, models.RoleAdmin))
	assert.False(t, HasRole(nil, models.RoleAdmin))
}
