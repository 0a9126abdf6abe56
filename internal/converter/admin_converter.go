package converter

import (
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
)

// AdminToResponse converts an Admin entity to AdminResponse DTO
func AdminToResponse(admin *entity.Admin) *dto.AdminResponse {
	if admin == nil {
		return nil
	}

	return &dto.AdminResponse{
		ID:        admin.ID,
		Username:  admin.Username,
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}
