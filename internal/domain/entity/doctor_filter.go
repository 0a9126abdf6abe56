package entity

import "time"

// DoctorFilter is a domain-level filter for the back-office doctor listing
type DoctorFilter struct {
	Search    string // Matches firstname or lastname (LIKE)
	DateRange string // Preset: today, last_7_days, last_15_days, last_update
	Page      int
	Limit     int
}

// DoctorSummary is one row of the back-office doctor listing, with per-status
// prescription counts computed by subquery.
type DoctorSummary struct {
	ID             uint      `json:"id"`
	Firstname      string    `json:"firstname"`
	Lastname       string    `json:"lastname"`
	Email          string    `json:"email"`
	Mobile         string    `json:"mobile"`
	ProfileImage   string    `json:"profile_image"`
	CreatedAt      time.Time `json:"created_at"`
	DeliveredCount int64     `json:"delivered_count"`
	ClosedCount    int64     `json:"closed_count"`
}

// DeliveryBoySummary is one row of the delivery agent listing, with the number
// of prescriptions currently out for delivery.
type DeliveryBoySummary struct {
	DID           uint   `gorm:"column:d_id" json:"d_id"`
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
	DispatchCount int64  `json:"dispatch_count"`
}
