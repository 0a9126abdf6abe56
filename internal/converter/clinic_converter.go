package converter

import (
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
)

// ClinicToResponse converts a Clinic entity to ClinicResponse DTO
func ClinicToResponse(clinic *entity.Clinic) *dto.ClinicResponse {
	if clinic == nil {
		return nil
	}

	return &dto.ClinicResponse{
		ClinicID:                  clinic.ClinicID,
		UserID:                    clinic.UserID,
		Name:                      clinic.Name,
		Address:                   clinic.Address,
		City:                      clinic.City,
		NearBy:                    clinic.NearBy,
		AssistantName:             clinic.AssistantName,
		AssistantMobile:           clinic.AssistantMobile,
		IsAssistantMobileVerified: clinic.IsAssistantMobileVerified,
		CreatedAt:                 clinic.CreatedAt,
		UpdatedAt:                 clinic.UpdatedAt,
	}
}
