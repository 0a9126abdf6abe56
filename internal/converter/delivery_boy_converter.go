package converter

import (
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
)

// DeliveryBoyToResponse converts a DeliveryBoy entity to DeliveryBoyResponse DTO
func DeliveryBoyToResponse(deliveryBoy *entity.DeliveryBoy) *dto.DeliveryBoyResponse {
	if deliveryBoy == nil {
		return nil
	}

	return &dto.DeliveryBoyResponse{
		DID:       deliveryBoy.DID,
		Name:      deliveryBoy.Name,
		Mobile:    deliveryBoy.Mobile,
		CreatedAt: deliveryBoy.CreatedAt,
		UpdatedAt: deliveryBoy.UpdatedAt,
	}
}

// DeliveryBoySummariesToResponses converts listing rows to DTOs
func DeliveryBoySummariesToResponses(summaries []entity.DeliveryBoySummary) []dto.DeliveryBoySummaryResponse {
	responses := make([]dto.DeliveryBoySummaryResponse, len(summaries))
	for i, summary := range summaries {
		responses[i] = dto.DeliveryBoySummaryResponse{
			DID:           summary.DID,
			Name:          summary.Name,
			Mobile:        summary.Mobile,
			DispatchCount: summary.DispatchCount,
		}
	}
	return responses
}
