// Package cache provides the process-local response cache. Entries hold
// computed DTO collections or scalars under deterministic keys and expire
// after a fixed TTL. The cache is advisory: a miss always falls through to
// the live query path, and mutations remove the per-id key plus the
// all-<kind> aggregate key. Parameterized search keys are not proactively
// invalidated; their staleness is bounded by the TTL alone.
package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"trendline/dto"
)

// TTL is the fixed lifetime of every cache entry
const TTL = 10 * time.Minute

// Aggregate keys per resource kind
const (
	AllProducts        = "products:all"
	AllOrders          = "orders:all"
	AllCustomers       = "customers:all"
	CountAvailableKey  = "products:count:available"
	CountOutOfStockKey = "products:count:outofstock"
)

// ResponseCache is a TTL-keyed cache of computed API responses, safe for
// concurrent use
type ResponseCache struct {
	store *gocache.Cache
}

// New creates a ResponseCache with the fixed TTL
func New() *ResponseCache {
	return &ResponseCache{
		store: gocache.New(TTL, TTL),
	}
}

// Get returns the cached value for key if present and unexpired
func (c *ResponseCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set stores value under key for the fixed TTL
func (c *ResponseCache) Set(key string, value interface{}) {
	c.store.Set(key, value, TTL)
}

// Remove drops the given keys; unknown keys are ignored
func (c *ResponseCache) Remove(keys ...string) {
	for _, key := range keys {
		c.store.Delete(key)
	}
}

// ProductKey is the per-id product cache key
func ProductKey(id uint) string {
	return fmt.Sprintf("products:id:%d", id)
}

// ProductQuantityKey is the per-id quantity report cache key
func ProductQuantityKey(id uint) string {
	return fmt.Sprintf("products:quantity:%d", id)
}

// ProductsByCategoryKey is the category filter cache key
func ProductsByCategoryKey(category string) string {
	return "products:byCategory:" + category
}

// ProductsByBrandKey is the brand filter cache key
func ProductsByBrandKey(brand string) string {
	return "products:byBrand:" + brand
}

// ProductsByGenderKey is the gender filter cache key
func ProductsByGenderKey(gender string) string {
	return "products:byGender:" + strings.ToLower(gender)
}

// ProductsByPriceRangeKey is the price range filter cache key
func ProductsByPriceRangeKey(min, max float64) string {
	return fmt.Sprintf("products:byPriceRange:%s:%s",
		strconv.FormatFloat(min, 'f', -1, 64),
		strconv.FormatFloat(max, 'f', -1, 64))
}

// ProductsBySizeKey is the size filter cache key
func ProductsBySizeKey(size string) string {
	return "products:bySize:" + size
}

// ProductsByColorKey is the color filter cache key
func ProductsByColorKey(color string) string {
	return "products:byColor:" + color
}

// CountByCategoryKey is the category count cache key
func CountByCategoryKey(category string) string {
	return "products:count:byCategory:" + category
}

// CountByBrandKey is the brand count cache key
func CountByBrandKey(brand string) string {
	return "products:count:byBrand:" + brand
}

// SearchProductsKey serializes the search parameters into a deterministic
// key: fields appear in a fixed order and absent fields are marked, so two
// equal parameter structs always map to the same key.
func SearchProductsKey(params dto.SearchParams) string {
	var b strings.Builder
	b.WriteString("products:search")

	writeString := func(name, value string) {
		b.WriteByte(':')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(value)
	}

	writeString("category", params.Category)
	writeString("gender", strings.ToLower(params.Gender))
	writeString("brand", params.Brand)
	if params.PriceMin != nil {
		writeString("priceMin", strconv.FormatFloat(*params.PriceMin, 'f', -1, 64))
	} else {
		writeString("priceMin", "-")
	}
	if params.PriceMax != nil {
		writeString("priceMax", strconv.FormatFloat(*params.PriceMax, 'f', -1, 64))
	} else {
		writeString("priceMax", "-")
	}
	writeString("size", params.Size)
	writeString("color", params.Color)
	if params.InStock != nil {
		writeString("inStock", strconv.FormatBool(*params.InStock))
	} else {
		writeString("inStock", "-")
	}

	return b.String()
}

// OrderKey is the per-id order cache key
func OrderKey(id uint) string {
	return fmt.Sprintf("orders:id:%d", id)
}

// OrdersByStatusKey is the status filter cache key
func OrdersByStatusKey(status string) string {
	return "orders:byStatus:" + status
}

// OrdersByDateRangeKey is the date range filter cache key
func OrdersByDateRangeKey(start, end time.Time) string {
	return fmt.Sprintf("orders:byDateRange:%s:%s",
		start.UTC().Format("20060102"), end.UTC().Format("20060102"))
}

// CustomerOrdersKey is the per-customer order list cache key
func CustomerOrdersKey(customerID string) string {
	return "orders:byCustomer:" + customerID
}

// CustomerKey is the per-id customer cache key
func CustomerKey(id string) string {
	return "customers:id:" + id
}
