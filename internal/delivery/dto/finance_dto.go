package dto

// Request DTOs

type UpdateDoctorRatesRequest struct {
	Discount   *float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Commission *float64 `json:"commission" validate:"omitempty,gte=0,lte=100"`
}

// Response DTOs

type FinanceSummaryResponse struct {
	TotalClosePayment  float64 `json:"total_close_payment"`
	PaidToDoctors      float64 `json:"paid_to_doctors"`
	PendingDues        float64 `json:"pending_dues"`
	DiscountToPatients float64 `json:"discount_to_patients"`
}

type DoctorDuesResponse struct {
	DoctorID    uint    `json:"doctor_id"`
	PayableDue  float64 `json:"payable_due"`
	PayablePaid float64 `json:"payable_paid"`
}

// FinancePrescriptionResponse is one row of the finance listing: the
// prescription with its bill and the computed charge breakdown.
type FinancePrescriptionResponse struct {
	PrescriptionID    uint    `json:"prescription_id"`
	PrID              string  `json:"pr_id"`
	PatientName       string  `json:"patient_name"`
	DoctorFirstname   string  `json:"doctor_firstname"`
	DoctorLastname    string  `json:"doctor_lastname"`
	Status            string  `json:"status"`
	TotalBill         float64 `json:"total_bill"`
	DiscountPercent   float64 `json:"discount_percent"`
	CommissionPercent float64 `json:"commission_percent"`
	DiscountAmount    float64 `json:"discount_amount"`
	CommissionAmount  float64 `json:"commission_amount"`
}
