package service

import (
	"rxcourier/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// DefaultRatePercent is applied for discount and commission on charge
// breakdowns when the doctor has no rate configured yet.
const DefaultRatePercent = 10.0

// Charges is the per-prescription money breakdown shown on finance listings.
type Charges struct {
	TotalBill         float64 `json:"total_bill"`
	DiscountPercent   float64 `json:"discount_percent"`
	CommissionPercent float64 `json:"commission_percent"`
	DiscountAmount    float64 `json:"discount_amount"`
	CommissionAmount  float64 `json:"commission_amount"`
}

// FinanceSummary aggregates bill money across all delivered and closed
// prescriptions.
type FinanceSummary struct {
	TotalClosePayment  float64 `json:"total_close_payment"`
	PaidToDoctors      float64 `json:"paid_to_doctors"`
	PendingDues        float64 `json:"pending_dues"`
	DiscountToPatients float64 `json:"discount_to_patients"`
}

// DoctorDues is the payable position of a single doctor: what has been paid
// out (closed prescriptions) and what is still owed (delivered, not yet
// closed).
type DoctorDues struct {
	PayableDue  float64 `json:"payable_due"`
	PayablePaid float64 `json:"payable_paid"`
}

// BillingCalculator implements the commission and discount arithmetic. All
// intermediate math runs on decimals and results round half-up to two places,
// so 1000 at 10% is exactly 100.00 and sums of rows match sums of rounded
// rows' inputs without float drift.
type BillingCalculator struct{}

func NewBillingCalculator() *BillingCalculator {
	return &BillingCalculator{}
}

// round2 rounds half away from zero to two decimal places.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// percentOf computes amount*(rate/100) on decimals.
func percentOf(amount, rate float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100))
}

// DiscountAmount returns the rounded discount portion of a bill total.
func (c *BillingCalculator) DiscountAmount(totalBill, discountPercent float64) float64 {
	return round2(percentOf(totalBill, discountPercent))
}

// CommissionAmount returns the rounded commission portion of a bill total.
func (c *BillingCalculator) CommissionAmount(totalBill, commissionPercent float64) float64 {
	return round2(percentOf(totalBill, commissionPercent))
}

// ChargesFor builds the charge breakdown for one prescription. Nil rates fall
// back to DefaultRatePercent; stored rates, including zero, are used as-is.
func (c *BillingCalculator) ChargesFor(totalBill float64, discount, commission *float64) Charges {
	discountRate := DefaultRatePercent
	if discount != nil {
		discountRate = *discount
	}
	commissionRate := DefaultRatePercent
	if commission != nil {
		commissionRate = *commission
	}

	return Charges{
		TotalBill:         totalBill,
		DiscountPercent:   discountRate,
		CommissionPercent: commissionRate,
		DiscountAmount:    c.DiscountAmount(totalBill, discountRate),
		CommissionAmount:  c.CommissionAmount(totalBill, commissionRate),
	}
}

// payableFor is the doctor's take of one bill: total minus commission and
// discount percentages of it. Unlike charge breakdowns, aggregate views use
// the stored rates directly, defaulting to zero when unset.
func payableFor(prescription entity.Prescription) decimal.Decimal {
	if prescription.Bill == nil {
		return decimal.Zero
	}

	total := decimal.NewFromFloat(prescription.Bill.TotalBill)
	rate := prescription.Doctor.CommissionRate() + prescription.Doctor.DiscountRate()
	cut := total.Mul(decimal.NewFromFloat(rate)).Div(decimal.NewFromInt(100))
	return total.Sub(cut)
}

// Summarize folds delivered and closed prescriptions (with bills and doctors
// preloaded) into the finance dashboard numbers. Closed rows are settled: their
// commission has been paid out and their discount extended. Delivered rows owe
// their commission as pending dues. Stored doctor rates apply, defaulting to
// zero when unset.
func (c *BillingCalculator) Summarize(delivered, closed []entity.Prescription) FinanceSummary {
	var totalClose, paid, pending, discount decimal.Decimal

	for _, p := range closed {
		if p.Bill == nil {
			continue
		}
		totalClose = totalClose.Add(decimal.NewFromFloat(p.Bill.TotalBill))
		paid = paid.Add(percentOf(p.Bill.TotalBill, p.Doctor.CommissionRate()))
		discount = discount.Add(percentOf(p.Bill.TotalBill, p.Doctor.DiscountRate()))
	}
	for _, p := range delivered {
		if p.Bill == nil {
			continue
		}
		pending = pending.Add(percentOf(p.Bill.TotalBill, p.Doctor.CommissionRate()))
	}

	return FinanceSummary{
		TotalClosePayment:  round2(totalClose),
		PaidToDoctors:      round2(paid),
		PendingDues:        round2(pending),
		DiscountToPatients: round2(discount),
	}
}

// DuesFor folds one doctor's delivered and closed prescriptions into their
// payable position.
func (c *BillingCalculator) DuesFor(delivered, closed []entity.Prescription) DoctorDues {
	var due, paidOut decimal.Decimal
	for _, p := range delivered {
		due = due.Add(payableFor(p))
	}
	for _, p := range closed {
		paidOut = paidOut.Add(payableFor(p))
	}

	return DoctorDues{
		PayableDue:  round2(due),
		PayablePaid: round2(paidOut),
	}
}
