package usecase

import (
	"context"
	"fmt"
	"testing"

	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/repository"
	"rxcourier/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFinanceUsecase(t *testing.T) (FinanceUsecase, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Bill{},
		&entity.Prescription{},
		&entity.AuditLog{},
	))

	log := logrus.New()
	uc := NewFinanceUsecase(
		db,
		log,
		repository.NewPrescriptionRepository(),
		repository.NewUserRepository(),
		service.NewBillingCalculator(),
		service.NewAuditService(db, log, repository.NewAuditLogRepository()),
	)
	return uc, db
}

func ratePtr(f float64) *float64 { return &f }

func seedDoctor(t *testing.T, db *gorm.DB, discount, commission *float64) *entity.User {
	t.Helper()

	doctor := &entity.User{
		Firstname:  "Meera",
		Lastname:   "Iyer",
		Mobile:     "9000000001",
		Password:   "x",
		Discount:   discount,
		Commission: commission,
	}
	require.NoError(t, db.Create(doctor).Error)
	return doctor
}

func seedBilled(t *testing.T, db *gorm.DB, doctorID uint, prID string, status entity.PrescriptionStatus, total float64) {
	t.Helper()

	p := &entity.Prescription{
		PrID:        prID,
		UserID:      doctorID,
		PatientName: "Asha Rao",
		Mobile:      "9876543210",
		Status:      status,
	}
	require.NoError(t, db.Create(p).Error)

	bill := &entity.Bill{
		PrescriptionID: p.PrescriptionID,
		UserID:         doctorID,
		TotalBill:      total,
	}
	require.NoError(t, db.Create(bill).Error)
	require.NoError(t, db.Model(p).Update("bill_id", bill.BillID).Error)
}

func TestFinanceSummary(t *testing.T) {
	uc, db := setupFinanceUsecase(t)

	doctor := seedDoctor(t, db, ratePtr(5), ratePtr(10))
	seedBilled(t, db, doctor.ID, "PR0001", entity.PrescriptionStatusClosed, 1000)
	seedBilled(t, db, doctor.ID, "PR0002", entity.PrescriptionStatusDelivered, 400)
	// Not part of either aggregate.
	seedBilled(t, db, doctor.ID, "PR0003", entity.PrescriptionStatusDispatch, 9999)

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1000.0, summary.TotalClosePayment)
	assert.Equal(t, 100.0, summary.PaidToDoctors)
	assert.Equal(t, 40.0, summary.PendingDues)
	assert.Equal(t, 50.0, summary.DiscountToPatients)
}

func TestFinanceSummaryEmpty(t *testing.T) {
	uc, _ := setupFinanceUsecase(t)

	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &dto.FinanceSummaryResponse{}, summary)
}

func TestFinanceDoctorDues(t *testing.T) {
	uc, db := setupFinanceUsecase(t)

	doctor := seedDoctor(t, db, ratePtr(5), ratePtr(10))
	other := &entity.User{Firstname: "Rahul", Mobile: "9111111111", Password: "x", Commission: ratePtr(50)}
	require.NoError(t, db.Create(other).Error)

	// 1000 - 15% = 850 due
	seedBilled(t, db, doctor.ID, "PR0001", entity.PrescriptionStatusDelivered, 1000)
	// 500 - 15% = 425 paid
	seedBilled(t, db, doctor.ID, "PR0002", entity.PrescriptionStatusClosed, 500)
	// Another doctor's money never leaks in.
	seedBilled(t, db, other.ID, "PR0003", entity.PrescriptionStatusDelivered, 10000)

	dues, err := uc.DoctorDues(context.Background(), doctor.ID)
	require.NoError(t, err)

	assert.Equal(t, doctor.ID, dues.DoctorID)
	assert.Equal(t, 850.0, dues.PayableDue)
	assert.Equal(t, 425.0, dues.PayablePaid)
}

func TestFinanceDoctorDuesUnknownDoctor(t *testing.T) {
	uc, _ := setupFinanceUsecase(t)

	_, err := uc.DoctorDues(context.Background(), 999)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestFinanceList(t *testing.T) {
	uc, db := setupFinanceUsecase(t)

	doctor := seedDoctor(t, db, nil, nil)
	seedBilled(t, db, doctor.ID, "PR0001", entity.PrescriptionStatusClosed, 1000)

	rows, meta, err := uc.List(context.Background(), &entity.PrescriptionFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), meta.Total)

	// Unset rates fall back to the default on the listing breakdown.
	row := rows[0]
	assert.Equal(t, "PR0001", row.PrID)
	assert.Equal(t, 1000.0, row.TotalBill)
	assert.Equal(t, service.DefaultRatePercent, row.DiscountPercent)
	assert.Equal(t, service.DefaultRatePercent, row.CommissionPercent)
	assert.Equal(t, 100.0, row.DiscountAmount)
	assert.Equal(t, 100.0, row.CommissionAmount)
}

func TestFinanceUpdateDoctorRates(t *testing.T) {
	uc, db := setupFinanceUsecase(t)

	doctor := seedDoctor(t, db, nil, nil)
	actorID := uint(1)

	resp, err := uc.UpdateDoctorRates(context.Background(), doctor.ID, &dto.UpdateDoctorRatesRequest{
		Discount:   ratePtr(5),
		Commission: ratePtr(12),
	}, &actorID)
	require.NoError(t, err)

	require.NotNil(t, resp.Discount)
	require.NotNil(t, resp.Commission)
	assert.Equal(t, 5.0, *resp.Discount)
	assert.Equal(t, 12.0, *resp.Commission)

	var stored entity.User
	require.NoError(t, db.First(&stored, doctor.ID).Error)
	require.NotNil(t, stored.Commission)
	assert.Equal(t, 12.0, *stored.Commission)

	// The rate change leaves an audit trail.
	var audits int64
	require.NoError(t, db.Model(&entity.AuditLog{}).
		Where("action = ?", entity.AuditActionDoctorRateUpdate).
		Count(&audits).Error)
	assert.Equal(t, int64(1), audits)

	_, err = uc.UpdateDoctorRates(context.Background(), 999, &dto.UpdateDoctorRatesRequest{}, &actorID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
