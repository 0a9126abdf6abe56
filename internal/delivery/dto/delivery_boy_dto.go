package dto

import "time"

// Request DTOs

type CreateDeliveryBoyRequest struct {
	Name   string `json:"name" validate:"required,max=128"`
	Mobile string `json:"mobile" validate:"required,numeric,min=10,max=15"`
}

type UpdateDeliveryBoyRequest struct {
	Name   string `json:"name" validate:"omitempty,max=128"`
	Mobile string `json:"mobile" validate:"omitempty,numeric,min=10,max=15"`
}

// Response DTOs

type DeliveryBoyResponse struct {
	DID       uint      `json:"d_id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DeliveryBoySummaryResponse struct {
	DID           uint   `json:"d_id"`
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
	DispatchCount int64  `json:"dispatch_count"`
}
