package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"rxcourier/internal/converter"
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/domain/repository"
	"rxcourier/internal/service"
	"rxcourier/pkg/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound    = errors.New("prescription not found")
	ErrInvalidStatus           = errors.New("unknown prescription status")
	ErrInvalidTransition       = errors.New("status transition not allowed")
	ErrPrescriptionNotEditable = errors.New("prescription can no longer be edited")
	ErrNotPrescriptionOwner    = errors.New("prescription belongs to another doctor")
	ErrEmptyBatch              = errors.New("prescription_ids must not be empty")
)

type PrescriptionUsecase interface {
	Create(ctx context.Context, userID uint, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.PrescriptionResponse, error)
	Update(ctx context.Context, id, userID uint, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	List(ctx context.Context, filter *entity.PrescriptionFilter) ([]dto.PrescriptionResponse, *response.Meta, error)
	StatusCounts(ctx context.Context, scope *entity.PrescriptionFilter) ([]dto.StatusCountResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string, actorID *uint, actorRole string) (*dto.PrescriptionResponse, error)
	UpdateStatusBatch(ctx context.Context, req *dto.UpdateStatusBatchRequest, actorID *uint, actorRole string) (*dto.BatchUpdateResponse, error)
	AttachBill(ctx context.Context, req *dto.AttachBillRequest, actorID *uint, actorRole string) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	billRepo         repository.BillRepository
	deliveryBoyRepo  repository.DeliveryBoyRepository
	notificationRepo repository.NotificationRepository
	sequenceService  *service.SequenceService
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	billRepo repository.BillRepository,
	deliveryBoyRepo repository.DeliveryBoyRepository,
	notificationRepo repository.NotificationRepository,
	sequenceService *service.SequenceService,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		billRepo:         billRepo,
		deliveryBoyRepo:  deliveryBoyRepo,
		notificationRepo: notificationRepo,
		sequenceService:  sequenceService,
		auditService:     auditService,
	}
}

func (u *prescriptionUsecase) Create(ctx context.Context, userID uint, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	prescription := &entity.Prescription{
		UserID:      userID,
		PatientName: req.PatientName,
		Mobile:      req.Mobile,
		Address:     req.Address,
		City:        req.City,
		NearBy:      req.NearBy,
		Images:      req.Images,
		Status:      entity.PrescriptionStatusOpen,
	}

	// pr_id allocation and the insert share one transaction inside the
	// sequence service.
	if err := u.sequenceService.CreateWithNextPrID(ctx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	// Best-effort fan-out: a failed notification or audit entry never undoes
	// the prescription.
	notification := &entity.Notification{
		UserID:  userID,
		Message: fmt.Sprintf("New prescription %s added", prescription.PrID),
	}
	if err := u.notificationRepo.Create(u.db.WithContext(ctx), notification); err != nil {
		u.log.Warnf("Failed to create prescription notification: %+v", err)
	}

	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &userID, "doctor",
		entity.AuditActionPrescriptionCreate, "prescription",
		prescription.PrID, prescription); err != nil {
		u.log.Warnf("Failed to audit prescription create: %+v", err)
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) GetByID(ctx context.Context, id uint) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByIDWithDoctor(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) Update(ctx context.Context, id, userID uint, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	prescription, err := u.prescriptionRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.UserID != userID {
		return nil, ErrNotPrescriptionOwner
	}
	if !prescription.IsOpen() {
		return nil, ErrPrescriptionNotEditable
	}

	if req.PatientName != "" {
		prescription.PatientName = req.PatientName
	}
	if req.Mobile != "" {
		prescription.Mobile = req.Mobile
	}
	if req.Address != "" {
		prescription.Address = req.Address
	}
	if req.City != "" {
		prescription.City = req.City
	}
	if req.NearBy != "" {
		prescription.NearBy = req.NearBy
	}
	if req.Images != nil {
		prescription.Images = req.Images
	}

	if err := u.prescriptionRepo.Update(tx, prescription); err != nil {
		u.log.Warnf("Failed to update prescription: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, "doctor",
		entity.AuditActionPrescriptionUpdate, "prescription",
		prescription.PrID, nil, req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) List(ctx context.Context, filter *entity.PrescriptionFilter) ([]dto.PrescriptionResponse, *response.Meta, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	prescriptions, total, err := u.prescriptionRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, nil, err
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	meta := &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}

	return converter.PrescriptionsToResponses(prescriptions), meta, nil
}

func (u *prescriptionUsecase) StatusCounts(ctx context.Context, scope *entity.PrescriptionFilter) ([]dto.StatusCountResponse, error) {
	counts, err := u.prescriptionRepo.CountByStatus(u.db.WithContext(ctx), scope)
	if err != nil {
		u.log.Warnf("Failed to count prescriptions by status: %+v", err)
		return nil, err
	}

	return converter.StatusCountsToResponses(counts), nil
}

func (u *prescriptionUsecase) UpdateStatus(ctx context.Context, id uint, status string, actorID *uint, actorRole string) (*dto.PrescriptionResponse, error) {
	target := entity.PrescriptionStatus(status)
	if !target.IsValid() {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	prescription, err := u.prescriptionRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	previous := prescription.Status
	if !previous.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	prescription.Status = target
	if err := u.prescriptionRepo.Update(tx, prescription); err != nil {
		u.log.Warnf("Failed to update prescription status: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, actorRole,
		entity.AuditActionStatusUpdate, "prescription",
		prescription.PrID, string(previous), string(target)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) UpdateStatusBatch(ctx context.Context, req *dto.UpdateStatusBatchRequest, actorID *uint, actorRole string) (*dto.BatchUpdateResponse, error) {
	if len(req.PrescriptionIDs) == 0 {
		return nil, ErrEmptyBatch
	}

	target := entity.PrescriptionStatus(req.Status)
	if !target.IsValid() {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// One guarded UPDATE: rows whose current status does not permit the
	// transition, and ids that do not exist, simply never match.
	updated, err := u.prescriptionRepo.UpdateStatusBatch(tx, req.PrescriptionIDs, target, entity.TransitionSourcesTo(target))
	if err != nil {
		u.log.Warnf("Failed to batch update prescription status: %+v", err)
		return nil, err
	}
	if updated == 0 {
		return nil, ErrPrescriptionNotFound
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, actorRole,
		entity.AuditActionStatusUpdate, "prescription",
		"batch:"+strconv.FormatInt(updated, 10), req.PrescriptionIDs, req.Status); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.BatchUpdateResponse{UpdatedCount: updated}, nil
}

func (u *prescriptionUsecase) AttachBill(ctx context.Context, req *dto.AttachBillRequest, actorID *uint, actorRole string) (*dto.PrescriptionResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	prescription, err := u.prescriptionRepo.FindByID(tx, req.PrescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	// Upsert keyed by prescription_id: a second attach updates the existing
	// bill in place, the row count stays at one.
	bill, err := u.billRepo.FindByPrescriptionID(tx, req.PrescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find bill: %+v", err)
		return nil, err
	}
	if bill == nil {
		bill = &entity.Bill{
			PrescriptionID: req.PrescriptionID,
			UserID:         prescription.UserID,
			BillNumber:     req.BillNumber,
			TotalBill:      req.TotalBill,
			Bills:          req.Bills,
		}
		if err := u.billRepo.Create(tx, bill); err != nil {
			u.log.Warnf("Failed to create bill: %+v", err)
			return nil, err
		}
	} else {
		bill.BillNumber = req.BillNumber
		bill.TotalBill = req.TotalBill
		if req.Bills != nil {
			bill.Bills = req.Bills
		}
		if err := u.billRepo.Update(tx, bill); err != nil {
			u.log.Warnf("Failed to update bill: %+v", err)
			return nil, err
		}
	}

	if req.DeliveryBoyID != nil {
		deliveryBoy, err := u.deliveryBoyRepo.FindByID(tx, *req.DeliveryBoyID)
		if err != nil {
			u.log.Warnf("Failed to find delivery boy: %+v", err)
			return nil, err
		}
		if deliveryBoy == nil {
			return nil, ErrDeliveryBoyNotFound
		}
		prescription.DeliveryBoyID = req.DeliveryBoyID
	}

	// Attaching a bill forces dispatch regardless of the current status.
	prescription.BillID = &bill.BillID
	prescription.Status = entity.PrescriptionStatusDispatch

	if err := u.prescriptionRepo.Update(tx, prescription); err != nil {
		u.log.Warnf("Failed to update prescription: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, actorRole,
		entity.AuditActionBillAttach, "prescription",
		prescription.PrID, nil, bill); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	prescription.Bill = bill
	return converter.PrescriptionToResponse(prescription), nil
}
