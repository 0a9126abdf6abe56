package entity

import (
	"time"
)

// PrescriptionStatus represents the lifecycle state of a prescription
type PrescriptionStatus string

const (
	PrescriptionStatusOpen      PrescriptionStatus = "open"
	PrescriptionStatusPreparing PrescriptionStatus = "preparing"
	PrescriptionStatusDispatch  PrescriptionStatus = "dispatch"
	PrescriptionStatusDelivered PrescriptionStatus = "delivered"
	PrescriptionStatusReturn    PrescriptionStatus = "return"
	PrescriptionStatusClosed    PrescriptionStatus = "closed"
	PrescriptionStatusDeclined  PrescriptionStatus = "declined"
)

// AllPrescriptionStatuses is the fixed status catalog. Dashboard counts report
// every entry here, including zero rows.
var AllPrescriptionStatuses = []PrescriptionStatus{
	PrescriptionStatusOpen,
	PrescriptionStatusPreparing,
	PrescriptionStatusDeclined,
	PrescriptionStatusDispatch,
	PrescriptionStatusDelivered,
	PrescriptionStatusReturn,
	PrescriptionStatusClosed,
}

// prescriptionTransitions is the legal edge set of the lifecycle state machine.
// return, closed and declined are terminal. Bill attachment bypasses this table
// and forces dispatch (see PrescriptionUsecase.AttachBill).
var prescriptionTransitions = map[PrescriptionStatus][]PrescriptionStatus{
	PrescriptionStatusOpen: {
		PrescriptionStatusPreparing,
		PrescriptionStatusDeclined,
		PrescriptionStatusDispatch,
		PrescriptionStatusDelivered,
		PrescriptionStatusReturn,
		PrescriptionStatusClosed,
	},
	PrescriptionStatusPreparing: {
		PrescriptionStatusDispatch,
		PrescriptionStatusDeclined,
	},
	PrescriptionStatusDispatch: {
		PrescriptionStatusDelivered,
		PrescriptionStatusReturn,
	},
	PrescriptionStatusDelivered: {
		PrescriptionStatusClosed,
	},
}

// IsValid reports whether s is part of the status catalog
func (s PrescriptionStatus) IsValid() bool {
	for _, status := range AllPrescriptionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func (s PrescriptionStatus) IsTerminal() bool {
	return len(prescriptionTransitions[s]) == 0
}

// CanTransitionTo reports whether the lifecycle permits moving from s to target
func (s PrescriptionStatus) CanTransitionTo(target PrescriptionStatus) bool {
	for _, next := range prescriptionTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionSourcesTo returns every status from which target is reachable.
// Batch status updates use this as a WHERE guard so illegal transitions are
// filtered in a single statement instead of per-row reads.
func TransitionSourcesTo(target PrescriptionStatus) []PrescriptionStatus {
	var sources []PrescriptionStatus
	for _, from := range AllPrescriptionStatuses {
		if from.CanTransitionTo(target) {
			sources = append(sources, from)
		}
	}
	return sources
}

// Prescription represents a doctor-submitted prescription and is the aggregate
// root of the delivery workflow. PrID is the human-readable sequential
// identifier minted exactly once at creation.
type Prescription struct {
	PrescriptionID uint               `gorm:"column:prescription_id;primaryKey;autoIncrement" json:"prescription_id"`
	PrID           string             `gorm:"column:pr_id;type:varchar(32);uniqueIndex;not null" json:"pr_id"`
	UserID         uint               `gorm:"not null;index" json:"user_id"`
	BillID         *uint              `gorm:"index" json:"bill_id,omitempty"`
	DeliveryBoyID  *uint              `gorm:"column:deliveryboy_id;index" json:"deliveryboy_id,omitempty"`
	PatientName    string             `gorm:"type:varchar(128);not null" json:"patient_name"`
	Mobile         string             `gorm:"type:varchar(15);not null" json:"mobile"`
	Address        string             `gorm:"type:varchar(128)" json:"address,omitempty"`
	City           string             `gorm:"type:varchar(128)" json:"city,omitempty"`
	NearBy         string             `gorm:"column:near_by;type:varchar(128)" json:"near_by,omitempty"`
	Images         StringArray        `gorm:"type:json" json:"prescriptions"`
	Status         PrescriptionStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	CreatedAt      time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor      User         `gorm:"foreignKey:UserID" json:"doctor,omitempty"`
	Bill        *Bill        `gorm:"foreignKey:PrescriptionID;references:PrescriptionID" json:"bill,omitempty"`
	DeliveryBoy *DeliveryBoy `gorm:"foreignKey:DeliveryBoyID" json:"delivery_boy,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// IsOpen checks if the prescription is still editable by the doctor
func (p *Prescription) IsOpen() bool {
	return p.Status == PrescriptionStatusOpen
}

// IsDispatched checks if a bill has been attached and delivery is underway
func (p *Prescription) IsDispatched() bool {
	return p.Status == PrescriptionStatusDispatch
}
