package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateSalesGroupsByProduct(t *testing.T) {
	rows := []salesRow{
		{ProductID: 1, ProductName: "Runner", Quantity: 2, Price: 50},
		{ProductID: 1, ProductName: "Runner", Quantity: 3, Price: 40},
		{ProductID: 2, ProductName: "Cap", Quantity: 1, Price: 10},
	}

	sales := aggregateSales(rows)

	assert.Len(t, sales, 2)
	assert.Equal(t, uint(1), sales[0].ProductID)
	assert.Equal(t, 5, sales[0].TotalQuantity)
	assert.InDelta(t, 220.0, sales[0].TotalRevenue, 1e-9)
	assert.Equal(t, uint(2), sales[1].ProductID)
	assert.Equal(t, 1, sales[1].TotalQuantity)
	assert.InDelta(t, 10.0, sales[1].TotalRevenue, 1e-9)
}

func TestAggregateSalesSortsByQuantityDesc(t *testing.T) {
	rows := []salesRow{
		{ProductID: 1, ProductName: "A", Quantity: 1, Price: 1},
		{ProductID: 2, ProductName: "B", Quantity: 9, Price: 1},
		{ProductID: 3, ProductName: "C", Quantity: 4, Price: 1},
	}

	sales := aggregateSales(rows)

	assert.Equal(t, uint(2), sales[0].ProductID)
	assert.Equal(t, uint(3), sales[1].ProductID)
	assert.Equal(t, uint(1), sales[2].ProductID)
}

func TestAggregateSalesTiebreakerIsProductID(t *testing.T) {
	rows := []salesRow{
		{ProductID: 7, ProductName: "G", Quantity: 2, Price: 1},
		{ProductID: 3, ProductName: "C", Quantity: 2, Price: 1},
		{ProductID: 5, ProductName: "E", Quantity: 2, Price: 1},
	}

	sales := aggregateSales(rows)

	assert.Equal(t, uint(3), sales[0].ProductID)
	assert.Equal(t, uint(5), sales[1].ProductID)
	assert.Equal(t, uint(7), sales[2].ProductID)
}

func TestAggregateSalesEmpty(t *testing.T) {
	sales := aggregateSales(nil)
	assert.NotNil(t, sales)
	assert.Len(t, sales, 0)
}

func TestAggregateSalesUsesSnapshotPrice(t *testing.T) {
	// The same product sold at two different prices sums each line at the
	// price it was ordered with
	rows := []salesRow{
		{ProductID: 1, ProductName: "Runner", Quantity: 1, Price: 100},
		{ProductID: 1, ProductName: "Runner", Quantity: 1, Price: 80},
	}

	sales := aggregateSales(rows)

	assert.Len(t, sales, 1)
	assert.InDelta(t, 180.0, sales[0].TotalRevenue, 1e-9)
}
