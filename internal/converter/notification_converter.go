package converter

import (
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
)

// NotificationToResponse converts a Notification entity to NotificationResponse DTO
func NotificationToResponse(notification *entity.Notification) *dto.NotificationResponse {
	if notification == nil {
		return nil
	}

	return &dto.NotificationResponse{
		NotificationID: notification.NotificationID,
		UserID:         notification.UserID,
		Message:        notification.Message,
		Read:           notification.Read,
		CreatedAt:      notification.CreatedAt,
	}
}

// NotificationsToResponses converts a slice of Notification entities to DTOs
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i, notification := range notifications {
		resp := NotificationToResponse(&notification)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
