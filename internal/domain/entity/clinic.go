package entity

import (
	"time"
)

// Clinic represents a doctor's clinic used as the pickup point for prescriptions
type Clinic struct {
	ClinicID                  uint      `gorm:"column:clinic_id;primaryKey;autoIncrement" json:"clinic_id"`
	UserID                    uint      `gorm:"not null;index" json:"user_id"`
	Name                      string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"name"`
	Address                   string    `gorm:"type:varchar(128)" json:"address,omitempty"`
	City                      string    `gorm:"type:varchar(128)" json:"city,omitempty"`
	NearBy                    string    `gorm:"column:near_by;type:varchar(128)" json:"near_by,omitempty"`
	AssistantName             string    `gorm:"type:varchar(128)" json:"assistant_name,omitempty"`
	AssistantMobile           string    `gorm:"type:varchar(15)" json:"assistant_mobile,omitempty"`
	IsAssistantMobileVerified bool      `gorm:"default:false" json:"is_assistant_mobile_verified"`
	CreatedAt                 time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                 time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Clinic) TableName() string {
	return "clinics"
}
