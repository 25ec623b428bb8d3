package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trendline/dto"
)

func TestSetGetRemove(t *testing.T) {
	c := New()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("key", "value")
	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	c.Remove("key")
	_, ok = c.Get("key")
	assert.False(t, ok)
}

func TestRemoveMultipleAndUnknownKeys(t *testing.T) {
	c := New()
	c.Set("a", 1)
	c.Set("b", 2)

	c.Remove("a", "b", "never-set")

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key:%d", n%10)
			c.Set(key, n)
			c.Get(key)
			c.Remove(key)
		}(i)
	}
	wg.Wait()
}

func TestProductKeys(t *testing.T) {
	assert.Equal(t, "products:id:5", ProductKey(5))
	assert.Equal(t, "products:quantity:5", ProductQuantityKey(5))
	assert.Equal(t, "products:byCategory:Shoes", ProductsByCategoryKey("Shoes"))
	assert.Equal(t, "products:byBrand:Generic", ProductsByBrandKey("Generic"))
	assert.Equal(t, "products:count:byCategory:Shoes", CountByCategoryKey("Shoes"))
	assert.Equal(t, "products:count:byBrand:Generic", CountByBrandKey("Generic"))
}

func TestGenderKeyCaseInsensitive(t *testing.T) {
	assert.Equal(t, ProductsByGenderKey("Male"), ProductsByGenderKey("MALE"))
	assert.Equal(t, ProductsByGenderKey("male"), ProductsByGenderKey("Male"))
}

func TestPriceRangeKeyStable(t *testing.T) {
	assert.Equal(t, "products:byPriceRange:10:99.5", ProductsByPriceRangeKey(10, 99.5))
	assert.Equal(t, ProductsByPriceRangeKey(10.0, 20.0), ProductsByPriceRangeKey(10, 20))
}

func TestSearchKeyDeterministic(t *testing.T) {
	min := 10.0
	max := 50.0
	inStock := true

	a := dto.SearchParams{Category: "Shoes", Gender: "Male", PriceMin: &min, PriceMax: &max, InStock: &inStock}
	min2 := 10.0
	max2 := 50.0
	inStock2 := true
	b := dto.SearchParams{Category: "Shoes", Gender: "male", PriceMin: &min2, PriceMax: &max2, InStock: &inStock2}

	assert.Equal(t, SearchProductsKey(a), SearchProductsKey(b))
}

func TestSearchKeyDistinguishesParams(t *testing.T) {
	min := 10.0
	base := dto.SearchParams{Category: "Shoes"}

	assert.NotEqual(t, SearchProductsKey(base), SearchProductsKey(dto.SearchParams{Category: "Hats"}))
	assert.NotEqual(t, SearchProductsKey(base), SearchProductsKey(dto.SearchParams{Category: "Shoes", PriceMin: &min}))
	assert.NotEqual(t, SearchProductsKey(base), SearchProductsKey(dto.SearchParams{Category: "Shoes", Brand: "Generic"}))
}

func TestSearchKeyMarksAbsentFields(t *testing.T) {
	// A present-but-zero price must not collide with an absent one
	zero := 0.0
	withZero := dto.SearchParams{PriceMin: &zero}
	absent := dto.SearchParams{}

	assert.NotEqual(t, SearchProductsKey(withZero), SearchProductsKey(absent))
}

func TestOrderAndCustomerKeys(t *testing.T) {
	assert.Equal(t, "orders:id:3", OrderKey(3))
	assert.Equal(t, "orders:byStatus:Pending", OrdersByStatusKey("Pending"))
	assert.Equal(t, "orders:byCustomer:abc", CustomerOrdersKey("abc"))
	assert.Equal(t, "customers:id:abc", CustomerKey("abc"))

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "orders:byDateRange:20260301:20260331", OrdersByDateRangeKey(start, end))
}

func TestTTLConstant(t *testing.T) {
	assert.Equal(t, 10*time.Minute, TTL)
}
