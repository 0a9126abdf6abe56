package entity

// PrescriptionFilter is a domain-level filter for querying prescriptions.
// Used by repository layer to avoid coupling with delivery DTOs.
type PrescriptionFilter struct {
	UserID        *uint  // Scope to a doctor
	DeliveryBoyID *uint  // Scope to a delivery agent
	Status        string // Exact status match
	PrID          string // Exact pr_id match
	Search        string // Free text: mixed alnum matches pr_id, alphabetic matches patient/doctor name
	StartDate     string // Format: YYYY-MM-DD, inclusive lower bound on createdAt
	EndDate       string // Format: YYYY-MM-DD, inclusive upper bound on createdAt
	DateRange     string // Preset: today, last_7_days, last_15_days, last_update
	Page          int
	Limit         int
}

// Date range presets
const (
	DateRangeToday      = "today"
	DateRangeLast7Days  = "last_7_days"
	DateRangeLast15Days = "last_15_days"
	DateRangeLastUpdate = "last_update"
)

// StatusCount is one row of the dashboard status breakdown
type StatusCount struct {
	Status PrescriptionStatus `json:"status"`
	Count  int64              `json:"count"`
}
