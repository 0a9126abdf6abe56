package entity

import (
	"time"
)

// AuditLog records lifecycle-relevant mutations: status transitions, bill
// attachments and rate changes. Metadata carries the old/new values.
type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID   *uint     `gorm:"index" json:"actor_id,omitempty"`
	ActorRole string    `gorm:"type:varchar(20)" json:"actor_role,omitempty"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON      `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionPrescriptionCreate = "prescription.create"
	AuditActionPrescriptionUpdate = "prescription.update"
	AuditActionStatusUpdate       = "prescription.status_update"
	AuditActionBillAttach         = "bill.attach"
	AuditActionDoctorRateUpdate   = "doctor.rate_update"
	AuditActionDoctorRegister     = "doctor.register"
	AuditActionDeliveryBoyCreate  = "delivery_boy.create"
)
