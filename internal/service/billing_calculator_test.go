package service

import (
	"testing"

	"rxcourier/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func billed(total float64, discount, commission *float64) entity.Prescription {
	return entity.Prescription{
		Bill:   &entity.Bill{TotalBill: total},
		Doctor: entity.User{Discount: discount, Commission: commission},
	}
}

func TestChargesForDefaultsUnsetRates(t *testing.T) {
	c := NewBillingCalculator()

	charges := c.ChargesFor(1000, nil, nil)

	assert.Equal(t, 1000.0, charges.TotalBill)
	assert.Equal(t, DefaultRatePercent, charges.DiscountPercent)
	assert.Equal(t, DefaultRatePercent, charges.CommissionPercent)
	assert.Equal(t, 100.0, charges.DiscountAmount)
	assert.Equal(t, 100.0, charges.CommissionAmount)
}

func TestChargesForStoredZeroRateIsNotDefaulted(t *testing.T) {
	c := NewBillingCalculator()

	charges := c.ChargesFor(1000, floatPtr(0), floatPtr(15))

	assert.Equal(t, 0.0, charges.DiscountPercent)
	assert.Equal(t, 0.0, charges.DiscountAmount)
	assert.Equal(t, 15.0, charges.CommissionPercent)
	assert.Equal(t, 150.0, charges.CommissionAmount)
}

func TestAmountsRoundHalfUpToTwoPlaces(t *testing.T) {
	c := NewBillingCalculator()

	// 333.33 * 10% = 33.333 -> 33.33
	assert.Equal(t, 33.33, c.DiscountAmount(333.33, 10))
	// 100.05 * 12.5% = 12.50625 -> 12.51
	assert.Equal(t, 12.51, c.CommissionAmount(100.05, 12.5))
	// 10.01 * 2.5% = 0.25025 -> 0.25
	assert.Equal(t, 0.25, c.CommissionAmount(10.01, 2.5))
	// Float-hostile product: 0.1*0.3 style drift must not leak through.
	assert.Equal(t, 0.03, c.DiscountAmount(0.1, 30))
}

func TestAmountsZeroAndMonotone(t *testing.T) {
	c := NewBillingCalculator()

	assert.Equal(t, 0.0, c.DiscountAmount(0, 10))
	assert.Equal(t, 0.0, c.CommissionAmount(500, 0))

	prev := 0.0
	for _, total := range []float64{10, 99.99, 100, 1000, 10000} {
		got := c.CommissionAmount(total, 7.5)
		assert.GreaterOrEqual(t, got, prev, "commission must not shrink as total grows")
		prev = got
	}
}

func TestSummarize(t *testing.T) {
	c := NewBillingCalculator()

	closed := []entity.Prescription{
		billed(1000, floatPtr(5), floatPtr(10)),
		billed(500, floatPtr(0), floatPtr(20)),
		// Unset rates count as zero in aggregates.
		billed(200, nil, nil),
	}
	delivered := []entity.Prescription{
		billed(400, floatPtr(5), floatPtr(10)),
		// No bill attached yet: contributes nothing.
		{Doctor: entity.User{Commission: floatPtr(50)}},
	}

	summary := c.Summarize(delivered, closed)

	assert.Equal(t, 1700.0, summary.TotalClosePayment)
	// 1000*10% + 500*20% + 200*0%
	assert.Equal(t, 200.0, summary.PaidToDoctors)
	// 400*10%
	assert.Equal(t, 40.0, summary.PendingDues)
	// 1000*5% + 500*0% + 200*0%
	assert.Equal(t, 50.0, summary.DiscountToPatients)
}

func TestSummarizeEmpty(t *testing.T) {
	c := NewBillingCalculator()

	summary := c.Summarize(nil, nil)

	assert.Equal(t, FinanceSummary{}, summary)
}

func TestDuesFor(t *testing.T) {
	c := NewBillingCalculator()

	delivered := []entity.Prescription{
		// 1000 - 1000*(10+5)/100 = 850
		billed(1000, floatPtr(5), floatPtr(10)),
	}
	closed := []entity.Prescription{
		// 500 - 500*(20+0)/100 = 400
		billed(500, floatPtr(0), floatPtr(20)),
		// Unset rates: full total is payable.
		billed(100, nil, nil),
	}

	dues := c.DuesFor(delivered, closed)

	assert.Equal(t, 850.0, dues.PayableDue)
	assert.Equal(t, 500.0, dues.PayablePaid)
}

func TestDuesForSkipsUnbilled(t *testing.T) {
	c := NewBillingCalculator()

	delivered := []entity.Prescription{
		{Doctor: entity.User{Commission: floatPtr(10)}},
	}

	dues := c.DuesFor(delivered, nil)

	assert.Equal(t, 0.0, dues.PayableDue)
	assert.Equal(t, 0.0, dues.PayablePaid)
}
