package entity

import (
	"time"
)

// DeliveryBoy represents a delivery agent assigned to dispatched prescriptions
type DeliveryBoy struct {
	DID       uint      `gorm:"column:d_id;primaryKey;autoIncrement" json:"d_id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	Mobile    string    `gorm:"type:varchar(15);uniqueIndex;not null" json:"mobile"`
	Removed   bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Prescriptions []Prescription `gorm:"foreignKey:DeliveryBoyID" json:"prescriptions,omitempty"`
}

func (DeliveryBoy) TableName() string {
	return "delivery_boys"
}
