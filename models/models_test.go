package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptrFloat(v float64) *float64 { return &v }

func TestFinalPriceNoDiscount(t *testing.T) {
	p := Product{Price: 100}
	assert.Equal(t, 100.0, p.FinalPrice())
}

func TestFinalPricePercentage(t *testing.T) {
	p := Product{
		Price:    100,
		Discount: &Discount{Percentage: ptrFloat(20)},
	}
	assert.InDelta(t, 80.0, p.FinalPrice(), 1e-9)
}

func TestFinalPriceAmount(t *testing.T) {
	p := Product{
		Price:    100,
		Discount: &Discount{Amount: 15},
	}
	assert.InDelta(t, 85.0, p.FinalPrice(), 1e-9)
}

func TestFinalPricePercentageWinsOverAmount(t *testing.T) {
	p := Product{
		Price: 100,
		Discount: &Discount{
			Amount:     15,
			Percentage: ptrFloat(20),
		},
	}
	assert.InDelta(t, 80.0, p.FinalPrice(), 1e-9)
}

func TestFinalPriceExpiredDiscount(t *testing.T) {
	expired := time.Now().UTC().Add(-time.Hour)
	p := Product{
		Price: 100,
		Discount: &Discount{
			Percentage:     ptrFloat(20),
			ExpirationDate: &expired,
		},
	}
	assert.Equal(t, 100.0, p.FinalPrice())
}

func TestFinalPriceZeroValuedDiscount(t *testing.T) {
	p := Product{Price: 100, Discount: &Discount{}}
	assert.Equal(t, 100.0, p.FinalPrice())
}

func TestFinalPriceNotClamped(t *testing.T) {
	p := Product{Price: 10, Discount: &Discount{Amount: 25}}
	assert.InDelta(t, -15.0, p.FinalPrice(), 1e-9)
}

func TestDiscountActive(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.True(t, (&Discount{}).Active(now))
	assert.True(t, (&Discount{ExpirationDate: &future}).Active(now))
	assert.False(t, (&Discount{ExpirationDate: &past}).Active(now))
	// Expiring exactly now still counts as active
	assert.True(t, (&Discount{ExpirationDate: &now}).Active(now))
}

func TestParseGender(t *testing.T) {
	for _, raw := range []string{"male", "Male", "MALE"} {
		g, ok := ParseGender(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, GenderMale, g)
	}

	g, ok := ParseGender("neutral")
	assert.True(t, ok)
	assert.Equal(t, GenderNeutral, g)

	_, ok = ParseGender("unknown")
	assert.False(t, ok)
	_, ok = ParseGender("")
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	role, ok = ParseRole("Advanced User")
	assert.True(t, ok)
	assert.Equal(t, RoleAdvancedUser, role)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)
}

func TestRoleElevated(t *testing.T) {
	assert.True(t, RoleAdmin.Elevated())
	assert.True(t, RoleAdvancedUser.Elevated())
	assert.False(t, RoleSimpleUser.Elevated())
	assert.False(t, RoleCustomer.Elevated())
}

func TestParseReportType(t *testing.T) {
	cases := map[string]ReportType{
		"daily-sales":   ReportDailySales,
		"DailySales":    ReportDailySales,
		"monthly-sales": ReportMonthlySales,
		"top-products":  ReportTopProducts,
		"TopProducts":   ReportTopProducts,
	}
	for raw, want := range cases {
		got, ok := ParseReportType(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got)
	}

	_, ok := ParseReportType("yearly-sales")
	assert.False(t, ok)
}
