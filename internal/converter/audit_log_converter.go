package converter

import (
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
)

// AuditLogToResponse converts an AuditLog entity to AuditLogResponse DTO
func AuditLogToResponse(auditLog *entity.AuditLog) *dto.AuditLogResponse {
	if auditLog == nil {
		return nil
	}

	return &dto.AuditLogResponse{
		ID:        auditLog.ID,
		ActorID:   auditLog.ActorID,
		ActorRole: auditLog.ActorRole,
		Action:    auditLog.Action,
		Metadata:  auditLog.Metadata,
		CreatedAt: auditLog.CreatedAt,
	}
}

// AuditLogsToResponses converts a slice of AuditLog entities to DTOs
func AuditLogsToResponses(auditLogs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(auditLogs))
	for i, auditLog := range auditLogs {
		resp := AuditLogToResponse(&auditLog)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
