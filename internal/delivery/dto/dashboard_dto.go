package dto

import "time"

// Response DTOs

type DashboardResponse struct {
	TotalDoctors        int64                  `json:"total_doctors"`
	TotalPrescriptions  int64                  `json:"total_prescriptions"`
	StatusCounts        []StatusCountResponse  `json:"status_counts"`
	RecentPrescriptions []PrescriptionResponse `json:"recent_prescriptions"`
}

type DoctorSummaryResponse struct {
	ID             uint      `json:"id"`
	Firstname      string    `json:"firstname"`
	Lastname       string    `json:"lastname"`
	Email          string    `json:"email,omitempty"`
	Mobile         string    `json:"mobile"`
	ProfileImage   string    `json:"profile_image,omitempty"`
	DeliveredCount int64     `json:"delivered_count"`
	ClosedCount    int64     `json:"closed_count"`
	CreatedAt      time.Time `json:"created_at"`
}
