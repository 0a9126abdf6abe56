package dto

import "time"

// Request DTOs

type CreatePrescriptionRequest struct {
	PatientName string   `json:"patient_name" validate:"required,max=128"`
	Mobile      string   `json:"mobile" validate:"required,numeric,min=10,max=15"`
	Address     string   `json:"address" validate:"omitempty,max=128"`
	City        string   `json:"city" validate:"omitempty,max=128"`
	NearBy      string   `json:"near_by" validate:"omitempty,max=128"`
	Images      []string `json:"prescriptions" validate:"omitempty,dive,url"`
}

type UpdatePrescriptionRequest struct {
	PatientName string   `json:"patient_name" validate:"omitempty,max=128"`
	Mobile      string   `json:"mobile" validate:"omitempty,numeric,min=10,max=15"`
	Address     string   `json:"address" validate:"omitempty,max=128"`
	City        string   `json:"city" validate:"omitempty,max=128"`
	NearBy      string   `json:"near_by" validate:"omitempty,max=128"`
	Images      []string `json:"prescriptions" validate:"omitempty,dive,url"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open preparing dispatch delivered return closed declined"`
}

type UpdateStatusBatchRequest struct {
	PrescriptionIDs []uint `json:"prescription_ids" validate:"required,min=1,dive,min=1"`
	Status          string `json:"status" validate:"required,oneof=open preparing dispatch delivered return closed declined"`
}

type AttachBillRequest struct {
	PrescriptionID uint     `json:"prescription_id" validate:"required,min=1"`
	TotalBill      float64  `json:"total_bill" validate:"omitempty,gte=0"`
	BillNumber     string   `json:"bill_number" validate:"omitempty,max=10"`
	Bills          []string `json:"bills" validate:"omitempty,dive,url"`
	DeliveryBoyID  *uint    `json:"deliveryboy_id" validate:"omitempty,min=1"`
}

type ListPrescriptionsRequest struct {
	Status    string `json:"status" validate:"omitempty,oneof=open preparing dispatch delivered return closed declined"`
	Search    string `json:"search"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	DateRange string `json:"date_range" validate:"omitempty,oneof=today last_7_days last_15_days last_update"`
	Page      int    `json:"page" validate:"omitempty,min=1"`
	Limit     int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// Response DTOs

type PrescriptionResponse struct {
	PrescriptionID uint                 `json:"prescription_id"`
	PrID           string               `json:"pr_id"`
	UserID         uint                 `json:"user_id"`
	PatientName    string               `json:"patient_name"`
	Mobile         string               `json:"mobile"`
	Address        string               `json:"address,omitempty"`
	City           string               `json:"city,omitempty"`
	NearBy         string               `json:"near_by,omitempty"`
	Images         []string             `json:"prescriptions"`
	Status         string               `json:"status"`
	Doctor         *DoctorBriefResponse `json:"doctor,omitempty"`
	Bill           *BillResponse        `json:"bill,omitempty"`
	DeliveryBoy    *DeliveryBoyResponse `json:"delivery_boy,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type DoctorBriefResponse struct {
	ID        uint   `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Mobile    string `json:"mobile"`
}

type BillResponse struct {
	BillID         uint      `json:"bill_id"`
	PrescriptionID uint      `json:"prescription_id"`
	BillNumber     string    `json:"bill_number,omitempty"`
	TotalBill      float64   `json:"total_bill"`
	Bills          []string  `json:"bills,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type BatchUpdateResponse struct {
	UpdatedCount int64 `json:"updated_count"`
}
