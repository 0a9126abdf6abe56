package dto

import "time"

// Request DTOs

type CreateNotificationRequest struct {
	UserID  uint   `json:"user_id" validate:"required,min=1"`
	Message string `json:"message" validate:"required,max=255"`
}

// Response DTOs

type NotificationResponse struct {
	NotificationID uint      `json:"notification_id"`
	UserID         uint      `json:"user_id"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}
