package entity

import (
	"time"
)

// User represents a prescribing doctor. Discount and Commission are percentage
// rates (0-100) negotiated with the back office; nil means never configured.
type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Firstname      string    `gorm:"type:varchar(128);not null" json:"firstname"`
	Lastname       string    `gorm:"type:varchar(128);not null" json:"lastname"`
	Mobile         string    `gorm:"type:varchar(15);uniqueIndex;not null" json:"mobile"`
	Email          string    `gorm:"type:varchar(128)" json:"email,omitempty"`
	Designation    string    `gorm:"type:varchar(128)" json:"designation,omitempty"`
	Password       string    `gorm:"type:varchar(128);not null" json:"-"`
	SocialMediaID  string    `gorm:"column:social_media_id;type:varchar(256)" json:"-"`
	LoginMethod    string    `gorm:"type:varchar(64)" json:"login_method,omitempty"`
	IsMobileVerify bool      `gorm:"default:false" json:"is_mobile_verify"`
	ProfileImage   string    `gorm:"type:varchar(512)" json:"profile_image,omitempty"`
	IsClinicAdded  bool      `gorm:"default:false" json:"is_clinic_added"`
	Removed        bool      `gorm:"default:false;index" json:"-"`
	Discount       *float64  `json:"discount,omitempty"`
	Commission     *float64  `json:"commission,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Prescriptions []Prescription `gorm:"foreignKey:UserID" json:"prescriptions,omitempty"`
	Clinic        *Clinic        `gorm:"foreignKey:UserID" json:"clinic,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// DiscountRate returns the stored discount percentage, 0 when unset
func (u *User) DiscountRate() float64 {
	if u.Discount == nil {
		return 0
	}
	return *u.Discount
}

// CommissionRate returns the stored commission percentage, 0 when unset
func (u *User) CommissionRate() float64 {
	if u.Commission == nil {
		return 0
	}
	return *u.Commission
}
