package usecase

import (
	"context"

	"rxcourier/internal/converter"
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/repository"
	"rxcourier/pkg/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditLogUsecase interface {
	List(ctx context.Context, page, limit int) ([]dto.AuditLogResponse, *response.Meta, error)
}

type auditLogUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *auditLogUsecase) List(ctx context.Context, page, limit int) ([]dto.AuditLogResponse, *response.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	logs, total, err := u.auditRepo.FindAll(u.db.WithContext(ctx), page, limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}

	return converter.AuditLogsToResponses(logs), meta, nil
}
