package dto

import (
	"time"

	"rxcourier/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	ActorID   *uint       `json:"actor_id,omitempty"`
	ActorRole string      `json:"actor_role,omitempty"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}
