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
	"rxcourier/pkg/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

type FinanceUsecase interface {
	Summary(ctx context.Context) (*dto.FinanceSummaryResponse, error)
	DoctorDues(ctx context.Context, doctorID uint) (*dto.DoctorDuesResponse, error)
	List(ctx context.Context, filter *entity.PrescriptionFilter) ([]dto.FinancePrescriptionResponse, *response.Meta, error)
	UpdateDoctorRates(ctx context.Context, doctorID uint, req *dto.UpdateDoctorRatesRequest, actorID *uint) (*dto.UserResponse, error)
}

type financeUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	userRepo         repository.UserRepository
	calculator       *service.BillingCalculator
	auditService     service.AuditService
}

func NewFinanceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	userRepo repository.UserRepository,
	calculator *service.BillingCalculator,
	auditService service.AuditService,
) FinanceUsecase {
	return &financeUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		userRepo:         userRepo,
		calculator:       calculator,
		auditService:     auditService,
	}
}

// Summary partitions billed prescriptions into closed (settled) and delivered
// (pending) and folds them into the finance dashboard totals. Pure read.
func (u *financeUsecase) Summary(ctx context.Context) (*dto.FinanceSummaryResponse, error) {
	db := u.db.WithContext(ctx)

	closed, err := u.prescriptionRepo.FindByStatusWithBill(db, entity.PrescriptionStatusClosed, nil)
	if err != nil {
		u.log.Warnf("Failed to load closed prescriptions: %+v", err)
		return nil, err
	}

	delivered, err := u.prescriptionRepo.FindByStatusWithBill(db, entity.PrescriptionStatusDelivered, nil)
	if err != nil {
		u.log.Warnf("Failed to load delivered prescriptions: %+v", err)
		return nil, err
	}

	summary := u.calculator.Summarize(delivered, closed)
	return &dto.FinanceSummaryResponse{
		TotalClosePayment:  summary.TotalClosePayment,
		PaidToDoctors:      summary.PaidToDoctors,
		PendingDues:        summary.PendingDues,
		DiscountToPatients: summary.DiscountToPatients,
	}, nil
}

func (u *financeUsecase) DoctorDues(ctx context.Context, doctorID uint) (*dto.DoctorDuesResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.userRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	delivered, err := u.prescriptionRepo.FindByStatusWithBill(db, entity.PrescriptionStatusDelivered, &doctorID)
	if err != nil {
		u.log.Warnf("Failed to load delivered prescriptions: %+v", err)
		return nil, err
	}

	closed, err := u.prescriptionRepo.FindByStatusWithBill(db, entity.PrescriptionStatusClosed, &doctorID)
	if err != nil {
		u.log.Warnf("Failed to load closed prescriptions: %+v", err)
		return nil, err
	}

	dues := u.calculator.DuesFor(delivered, closed)
	return &dto.DoctorDuesResponse{
		DoctorID:    doctorID,
		PayableDue:  dues.PayableDue,
		PayablePaid: dues.PayablePaid,
	}, nil
}

// List is the finance listing: prescriptions with their bill and the computed
// charge breakdown per row. Unbilled rows carry a zero bill.
func (u *financeUsecase) List(ctx context.Context, filter *entity.PrescriptionFilter) ([]dto.FinancePrescriptionResponse, *response.Meta, error) {
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

	rows := make([]dto.FinancePrescriptionResponse, len(prescriptions))
	for i, p := range prescriptions {
		var totalBill float64
		if p.Bill != nil {
			totalBill = p.Bill.TotalBill
		}

		charges := u.calculator.ChargesFor(totalBill, p.Doctor.Discount, p.Doctor.Commission)
		rows[i] = dto.FinancePrescriptionResponse{
			PrescriptionID:    p.PrescriptionID,
			PrID:              p.PrID,
			PatientName:       p.PatientName,
			DoctorFirstname:   p.Doctor.Firstname,
			DoctorLastname:    p.Doctor.Lastname,
			Status:            string(p.Status),
			TotalBill:         charges.TotalBill,
			DiscountPercent:   charges.DiscountPercent,
			CommissionPercent: charges.CommissionPercent,
			DiscountAmount:    charges.DiscountAmount,
			CommissionAmount:  charges.CommissionAmount,
		}
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

	return rows, meta, nil
}

func (u *financeUsecase) UpdateDoctorRates(ctx context.Context, doctorID uint, req *dto.UpdateDoctorRatesRequest, actorID *uint) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	oldRates := map[string]*float64{"discount": doctor.Discount, "commission": doctor.Commission}

	if req.Discount != nil {
		doctor.Discount = req.Discount
	}
	if req.Commission != nil {
		doctor.Commission = req.Commission
	}

	if err := u.userRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor rates: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID, "admin",
		entity.AuditActionDoctorRateUpdate, "user",
		fmt.Sprintf("%d", doctorID), oldRates,
		map[string]*float64{"discount": doctor.Discount, "commission": doctor.Commission}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(doctor), nil
}
