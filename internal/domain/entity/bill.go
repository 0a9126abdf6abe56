package entity

import (
	"time"
)

// Bill is the billing record attached to a prescription by the back office.
// At most one bill exists per prescription; a second attachment updates the
// existing row in place.
type Bill struct {
	BillID         uint        `gorm:"column:bill_id;primaryKey;autoIncrement" json:"bill_id"`
	PrescriptionID uint        `gorm:"uniqueIndex;not null" json:"prescription_id"`
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	BillNumber     string      `gorm:"type:varchar(10)" json:"bill_number,omitempty"`
	TotalBill      float64     `gorm:"not null;default:0" json:"total_bill"`
	Bills          StringArray `gorm:"type:json" json:"bills,omitempty"`
	Removed        bool        `gorm:"default:false" json:"-"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bill) TableName() string {
	return "bills"
}
