package dto

import "time"

// Request DTOs

type CreateClinicRequest struct {
	Name            string `json:"name" validate:"required,max=128"`
	Address         string `json:"address" validate:"omitempty,max=128"`
	City            string `json:"city" validate:"omitempty,max=128"`
	NearBy          string `json:"near_by" validate:"omitempty,max=128"`
	AssistantName   string `json:"assistant_name" validate:"omitempty,max=128"`
	AssistantMobile string `json:"assistant_mobile" validate:"omitempty,numeric,min=10,max=15"`
}

type UpdateClinicRequest struct {
	Name            string `json:"name" validate:"omitempty,max=128"`
	Address         string `json:"address" validate:"omitempty,max=128"`
	City            string `json:"city" validate:"omitempty,max=128"`
	NearBy          string `json:"near_by" validate:"omitempty,max=128"`
	AssistantName   string `json:"assistant_name" validate:"omitempty,max=128"`
	AssistantMobile string `json:"assistant_mobile" validate:"omitempty,numeric,min=10,max=15"`
}

type VerifyAssistantMobileRequest struct {
	OTP string `json:"otp" validate:"required,len=6,numeric"`
}

// Response DTOs

type ClinicResponse struct {
	ClinicID                  uint      `json:"clinic_id"`
	UserID                    uint      `json:"user_id"`
	Name                      string    `json:"name"`
	Address                   string    `json:"address,omitempty"`
	City                      string    `json:"city,omitempty"`
	NearBy                    string    `json:"near_by,omitempty"`
	AssistantName             string    `json:"assistant_name,omitempty"`
	AssistantMobile           string    `json:"assistant_mobile,omitempty"`
	IsAssistantMobileVerified bool      `json:"is_assistant_mobile_verified"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}
