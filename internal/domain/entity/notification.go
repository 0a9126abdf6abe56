package entity

import (
	"time"
)

// Notification is a back-office event record, fanned out on doctor registration
// and prescription creation. Writes are best-effort: a failed notification never
// rolls back the write that triggered it.
type Notification struct {
	NotificationID uint      `gorm:"column:notification_id;primaryKey;autoIncrement" json:"notification_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Message        string    `gorm:"type:varchar(255);not null" json:"message"`
	Read           bool      `gorm:"default:false" json:"read"`
	Removed        bool      `gorm:"default:false" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
