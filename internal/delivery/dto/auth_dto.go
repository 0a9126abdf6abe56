package dto

import "time"

// Request DTOs

type RegisterDoctorRequest struct {
	Firstname   string `json:"firstname" validate:"required,max=128"`
	Lastname    string `json:"lastname" validate:"required,max=128"`
	Mobile      string `json:"mobile" validate:"required,numeric,min=10,max=15"`
	Email       string `json:"email" validate:"omitempty,email"`
	Designation string `json:"designation" validate:"omitempty,max=128"`
	Password    string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile" validate:"required,numeric"`
	Password string `json:"password" validate:"required"`
}

type SocialLoginRequest struct {
	SocialMediaID string `json:"social_media_id" validate:"required"`
	LoginMethod   string `json:"login_method" validate:"required,oneof=google facebook apple"`
	Firstname     string `json:"firstname" validate:"omitempty,max=128"`
	Lastname      string `json:"lastname" validate:"omitempty,max=128"`
	Email         string `json:"email" validate:"omitempty,email"`
	Mobile        string `json:"mobile" validate:"omitempty,numeric,min=10,max=15"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Mobile string `json:"mobile" validate:"required,numeric"`
}

type VerifyOTPRequest struct {
	Mobile string `json:"mobile" validate:"required,numeric"`
	OTP    string `json:"otp" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Mobile      string `json:"mobile" validate:"required,numeric"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Firstname    string `json:"firstname" validate:"omitempty,max=128"`
	Lastname     string `json:"lastname" validate:"omitempty,max=128"`
	Email        string `json:"email" validate:"omitempty,email"`
	Designation  string `json:"designation" validate:"omitempty,max=128"`
	ProfileImage string `json:"profile_image" validate:"omitempty,url"`
}

// Response DTOs

type UserResponse struct {
	ID             uint            `json:"id"`
	Firstname      string          `json:"firstname"`
	Lastname       string          `json:"lastname"`
	Mobile         string          `json:"mobile"`
	Email          string          `json:"email,omitempty"`
	Designation    string          `json:"designation,omitempty"`
	ProfileImage   string          `json:"profile_image,omitempty"`
	IsMobileVerify bool            `json:"is_mobile_verify"`
	IsClinicAdded  bool            `json:"is_clinic_added"`
	Discount       *float64        `json:"discount,omitempty"`
	Commission     *float64        `json:"commission,omitempty"`
	Clinic         *ClinicResponse `json:"clinic,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
