package usecase

import (
	"context"
	"errors"
	"fmt"

	"rxcourier/internal/converter"
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/domain/repository"
	"rxcourier/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDeliveryBoyNotFound     = errors.New("delivery boy not found")
	ErrDeliveryBoyMobileExists = errors.New("delivery boy mobile already registered")
)

type DeliveryBoyUsecase interface {
	Create(ctx context.Context, req *dto.CreateDeliveryBoyRequest, actorID *uint) (*dto.DeliveryBoyResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.DeliveryBoyResponse, error)
	List(ctx context.Context) ([]dto.DeliveryBoySummaryResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateDeliveryBoyRequest) (*dto.DeliveryBoyResponse, error)
}

type deliveryBoyUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	deliveryBoyRepo repository.DeliveryBoyRepository
	auditService    service.AuditService
}

func NewDeliveryBoyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	deliveryBoyRepo repository.DeliveryBoyRepository,
	auditService service.AuditService,
) DeliveryBoyUsecase {
	return &deliveryBoyUsecase{
		db:              db,
		log:             log,
		deliveryBoyRepo: deliveryBoyRepo,
		auditService:    auditService,
	}
}

func (u *deliveryBoyUsecase) Create(ctx context.Context, req *dto.CreateDeliveryBoyRequest, actorID *uint) (*dto.DeliveryBoyResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	deliveryBoy := &entity.DeliveryBoy{
		Name:   req.Name,
		Mobile: req.Mobile,
	}

	if err := u.deliveryBoyRepo.Create(tx, deliveryBoy); err != nil {
		if isDuplicateKeyError(err, "mobile") {
			return nil, ErrDeliveryBoyMobileExists
		}
		u.log.Warnf("Failed to create delivery boy: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID, "admin",
		entity.AuditActionDeliveryBoyCreate, "delivery_boy",
		fmt.Sprintf("%d", deliveryBoy.DID), deliveryBoy.Mobile); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DeliveryBoyToResponse(deliveryBoy), nil
}

func (u *deliveryBoyUsecase) GetByID(ctx context.Context, id uint) (*dto.DeliveryBoyResponse, error) {
	deliveryBoy, err := u.deliveryBoyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find delivery boy: %+v", err)
		return nil, err
	}
	if deliveryBoy == nil {
		return nil, ErrDeliveryBoyNotFound
	}

	return converter.DeliveryBoyToResponse(deliveryBoy), nil
}

func (u *deliveryBoyUsecase) List(ctx context.Context) ([]dto.DeliveryBoySummaryResponse, error) {
	summaries, err := u.deliveryBoyRepo.FindAllWithDispatchCount(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list delivery boys: %+v", err)
		return nil, err
	}

	return converter.DeliveryBoySummariesToResponses(summaries), nil
}

func (u *deliveryBoyUsecase) Update(ctx context.Context, id uint, req *dto.UpdateDeliveryBoyRequest) (*dto.DeliveryBoyResponse, error) {
	deliveryBoy, err := u.deliveryBoyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find delivery boy: %+v", err)
		return nil, err
	}
	if deliveryBoy == nil {
		return nil, ErrDeliveryBoyNotFound
	}

	if req.Name != "" {
		deliveryBoy.Name = req.Name
	}
	if req.Mobile != "" {
		deliveryBoy.Mobile = req.Mobile
	}

	if err := u.deliveryBoyRepo.Update(u.db.WithContext(ctx), deliveryBoy); err != nil {
		if isDuplicateKeyError(err, "mobile") {
			return nil, ErrDeliveryBoyMobileExists
		}
		u.log.Warnf("Failed to update delivery boy: %+v", err)
		return nil, err
	}

	return converter.DeliveryBoyToResponse(deliveryBoy), nil
}
