package entity

import (
	"time"
)

// Admin represents a back-office operator account
type Admin struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(128)" json:"email,omitempty"`
	Password  string    `gorm:"type:varchar(128);not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}
