package converter

import (
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:             user.ID,
		Firstname:      user.Firstname,
		Lastname:       user.Lastname,
		Mobile:         user.Mobile,
		Email:          user.Email,
		Designation:    user.Designation,
		ProfileImage:   user.ProfileImage,
		IsMobileVerify: user.IsMobileVerify,
		IsClinicAdded:  user.IsClinicAdded,
		Discount:       user.Discount,
		Commission:     user.Commission,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	if user.Clinic != nil {
		response.Clinic = ClinicToResponse(user.Clinic)
	}

	return response
}

// DoctorSummariesToResponses converts doctor listing rows to DTOs
func DoctorSummariesToResponses(summaries []entity.DoctorSummary) []dto.DoctorSummaryResponse {
	responses := make([]dto.DoctorSummaryResponse, len(summaries))
	for i, summary := range summaries {
		responses[i] = dto.DoctorSummaryResponse{
			ID:             summary.ID,
			Firstname:      summary.Firstname,
			Lastname:       summary.Lastname,
			Email:          summary.Email,
			Mobile:         summary.Mobile,
			ProfileImage:   summary.ProfileImage,
			DeliveredCount: summary.DeliveredCount,
			ClosedCount:    summary.ClosedCount,
			CreatedAt:      summary.CreatedAt,
		}
	}
	return responses
}
