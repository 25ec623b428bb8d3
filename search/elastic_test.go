package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trendline/models"
)

func TestNewDocument(t *testing.T) {
	pct := 25.0
	p := models.Product{
		Name:        "Runner",
		Description: "Light running shoe",
		Price:       100,
		Quantity:    4,
		Gender:      models.GenderNeutral,
		BrandID:     2,
		CategoryID:  3,
		Discount:    &models.Discount{Percentage: &pct},
	}
	p.ID = 9

	doc := NewDocument(&p)

	assert.Equal(t, uint(9), doc.ID)
	assert.Equal(t, "Runner", doc.Name)
	assert.Equal(t, 100.0, doc.Price)
	assert.InDelta(t, 75.0, doc.FinalPrice, 1e-9)
	assert.Equal(t, "Neutral", doc.Gender)
	assert.Equal(t, uint(2), doc.BrandID)
	assert.Equal(t, uint(3), doc.CategoryID)
}

func TestNewDocumentExpiredDiscount(t *testing.T) {
	pct := 25.0
	expired := time.Now().UTC().Add(-time.Hour)
	p := models.Product{
		Price:    100,
		Discount: &models.Discount{Percentage: &pct, ExpirationDate: &expired},
	}
	p.ID = 1

	doc := NewDocument(&p)
	assert.Equal(t, 100.0, doc.FinalPrice)
}
