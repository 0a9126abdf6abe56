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

func setupPrescriptionUsecase(t *testing.T) (PrescriptionUsecase, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.DeliveryBoy{},
		&entity.Bill{},
		&entity.Prescription{},
		&entity.Notification{},
		&entity.AuditLog{},
	))

	log := logrus.New()
	prescriptionRepo := repository.NewPrescriptionRepository()
	billRepo := repository.NewBillRepository()
	deliveryBoyRepo := repository.NewDeliveryBoyRepository()
	notificationRepo := repository.NewNotificationRepository()
	auditRepo := repository.NewAuditLogRepository()

	uc := NewPrescriptionUsecase(
		db,
		log,
		prescriptionRepo,
		billRepo,
		deliveryBoyRepo,
		notificationRepo,
		service.NewSequenceService(db, log, prescriptionRepo),
		service.NewAuditService(db, log, auditRepo),
	)
	return uc, db
}

func createPrescription(t *testing.T, uc PrescriptionUsecase, userID uint) *dto.PrescriptionResponse {
	t.Helper()

	resp, err := uc.Create(context.Background(), userID, &dto.CreatePrescriptionRequest{
		PatientName: "Asha Rao",
		Mobile:      "9876543210",
		Address:     "12 Gandhi Road",
		City:        "Pune",
	})
	require.NoError(t, err)
	return resp
}

func adminActor() (*uint, string) {
	id := uint(1)
	return &id, "admin"
}

func TestPrescriptionCreate(t *testing.T) {
	uc, db := setupPrescriptionUsecase(t)

	first := createPrescription(t, uc, 1)
	assert.Equal(t, "PR0001", first.PrID)
	assert.Equal(t, string(entity.PrescriptionStatusOpen), first.Status)

	second := createPrescription(t, uc, 2)
	assert.Equal(t, "PR0002", second.PrID)

	// Creation fans out a notification for the back office.
	var notifications int64
	require.NoError(t, db.Model(&entity.Notification{}).Count(&notifications).Error)
	assert.Equal(t, int64(2), notifications)
}

func TestPrescriptionGetByIDNotFound(t *testing.T) {
	uc, _ := setupPrescriptionUsecase(t)

	_, err := uc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
}

func TestPrescriptionUpdateGuards(t *testing.T) {
	uc, _ := setupPrescriptionUsecase(t)
	ctx := context.Background()

	created := createPrescription(t, uc, 1)
	actorID, actorRole := adminActor()

	// Only the submitting doctor may edit.
	_, err := uc.Update(ctx, created.PrescriptionID, 2, &dto.UpdatePrescriptionRequest{City: "Mumbai"})
	assert.ErrorIs(t, err, ErrNotPrescriptionOwner)

	updated, err := uc.Update(ctx, created.PrescriptionID, 1, &dto.UpdatePrescriptionRequest{City: "Mumbai"})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)

	// Once the prescription leaves open it is frozen for the doctor.
	_, err = uc.UpdateStatus(ctx, created.PrescriptionID, "preparing", actorID, actorRole)
	require.NoError(t, err)
	_, err = uc.Update(ctx, created.PrescriptionID, 1, &dto.UpdatePrescriptionRequest{City: "Delhi"})
	assert.ErrorIs(t, err, ErrPrescriptionNotEditable)
}

func TestPrescriptionUpdateStatus(t *testing.T) {
	uc, _ := setupPrescriptionUsecase(t)
	ctx := context.Background()

	created := createPrescription(t, uc, 1)
	actorID, actorRole := adminActor()

	resp, err := uc.UpdateStatus(ctx, created.PrescriptionID, "preparing", actorID, actorRole)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PrescriptionStatusPreparing), resp.Status)

	// preparing has no edge to delivered.
	_, err = uc.UpdateStatus(ctx, created.PrescriptionID, "delivered", actorID, actorRole)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = uc.UpdateStatus(ctx, created.PrescriptionID, "shipped", actorID, actorRole)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = uc.UpdateStatus(ctx, 999, "preparing", actorID, actorRole)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
}

func TestPrescriptionUpdateStatusTerminal(t *testing.T) {
	uc, _ := setupPrescriptionUsecase(t)
	ctx := context.Background()

	created := createPrescription(t, uc, 1)
	actorID, actorRole := adminActor()

	_, err := uc.UpdateStatus(ctx, created.PrescriptionID, "declined", actorID, actorRole)
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, created.PrescriptionID, "open", actorID, actorRole)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPrescriptionUpdateStatusBatch(t *testing.T) {
	uc, _ := setupPrescriptionUsecase(t)
	ctx := context.Background()

	open := createPrescription(t, uc, 1)
	dispatched := createPrescription(t, uc, 1)
	actorID, actorRole := adminActor()

	_, err := uc.UpdateStatus(ctx, dispatched.PrescriptionID, "dispatch", actorID, actorRole)
	require.NoError(t, err)

	// closed is reachable from open and delivered only: the dispatched row and
	// the unknown id fall out of the guarded update.
	resp, err := uc.UpdateStatusBatch(ctx, &dto.UpdateStatusBatchRequest{
		PrescriptionIDs: []uint{open.PrescriptionID, dispatched.PrescriptionID, 999},
		Status:          "closed",
	}, actorID, actorRole)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.UpdatedCount)

	closed, err := uc.GetByID(ctx, open.PrescriptionID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PrescriptionStatusClosed), closed.Status)

	untouched, err := uc.GetByID(ctx, dispatched.PrescriptionID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PrescriptionStatusDispatch), untouched.Status)
}

func TestPrescriptionUpdateStatusBatchNoMatches(t *testing.T) {
	uc, _ := setupPrescriptionUsecase(t)
	actorID, actorRole := adminActor()

	_, err := uc.UpdateStatusBatch(context.Background(), &dto.UpdateStatusBatchRequest{
		PrescriptionIDs: []uint{5, 999},
		Status:          "delivered",
	}, actorID, actorRole)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)

	_, err = uc.UpdateStatusBatch(context.Background(), &dto.UpdateStatusBatchRequest{
		Status: "delivered",
	}, actorID, actorRole)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestAttachBillForcesDispatch(t *testing.T) {
	uc, db := setupPrescriptionUsecase(t)
	ctx := context.Background()

	created := createPrescription(t, uc, 1)
	actorID, actorRole := adminActor()

	resp, err := uc.AttachBill(ctx, &dto.AttachBillRequest{
		PrescriptionID: created.PrescriptionID,
		TotalBill:      1200,
		BillNumber:     "B-101",
	}, actorID, actorRole)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PrescriptionStatusDispatch), resp.Status)
	require.NotNil(t, resp.Bill)
	assert.Equal(t, 1200.0, resp.Bill.TotalBill)

	// A second attach revises the existing bill instead of adding a row.
	resp, err = uc.AttachBill(ctx, &dto.AttachBillRequest{
		PrescriptionID: created.PrescriptionID,
		TotalBill:      1500,
		BillNumber:     "B-102",
	}, actorID, actorRole)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, resp.Bill.TotalBill)

	var bills int64
	require.NoError(t, db.Model(&entity.Bill{}).
		Where("prescription_id = ?", created.PrescriptionID).
		Count(&bills).Error)
	assert.Equal(t, int64(1), bills)
}

func TestAttachBillDeliveryBoyAssignment(t *testing.T) {
	uc, db := setupPrescriptionUsecase(t)
	ctx := context.Background()

	created := createPrescription(t, uc, 1)
	actorID, actorRole := adminActor()

	unknown := uint(999)
	_, err := uc.AttachBill(ctx, &dto.AttachBillRequest{
		PrescriptionID: created.PrescriptionID,
		TotalBill:      800,
		DeliveryBoyID:  &unknown,
	}, actorID, actorRole)
	assert.ErrorIs(t, err, ErrDeliveryBoyNotFound)

	boy := &entity.DeliveryBoy{Name: "Ravi Kumar", Mobile: "9000000001"}
	require.NoError(t, db.Create(boy).Error)

	resp, err := uc.AttachBill(ctx, &dto.AttachBillRequest{
		PrescriptionID: created.PrescriptionID,
		TotalBill:      800,
		DeliveryBoyID:  &boy.DID,
	}, actorID, actorRole)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PrescriptionStatusDispatch), resp.Status)

	var stored entity.Prescription
	require.NoError(t, db.First(&stored, created.PrescriptionID).Error)
	require.NotNil(t, stored.DeliveryBoyID)
	assert.Equal(t, boy.DID, *stored.DeliveryBoyID)
}

func TestAttachBillUnknownPrescription(t *testing.T) {
	uc, _ := setupPrescriptionUsecase(t)
	actorID, actorRole := adminActor()

	_, err := uc.AttachBill(context.Background(), &dto.AttachBillRequest{
		PrescriptionID: 999,
		TotalBill:      100,
	}, actorID, actorRole)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
}

func TestPrescriptionStatusCounts(t *testing.T) {
	uc, _ := setupPrescriptionUsecase(t)
	ctx := context.Background()

	// Empty store still reports the full catalog.
	counts, err := uc.StatusCounts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, counts, len(entity.AllPrescriptionStatuses))
	for _, c := range counts {
		assert.Zero(t, c.Count, "status %s", c.Status)
	}

	createPrescription(t, uc, 1)
	createPrescription(t, uc, 1)
	third := createPrescription(t, uc, 2)
	actorID, actorRole := adminActor()
	_, err = uc.UpdateStatus(ctx, third.PrescriptionID, "declined", actorID, actorRole)
	require.NoError(t, err)

	counts, err = uc.StatusCounts(ctx, nil)
	require.NoError(t, err)
	byStatus := make(map[string]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, int64(2), byStatus[string(entity.PrescriptionStatusOpen)])
	assert.Equal(t, int64(1), byStatus[string(entity.PrescriptionStatusDeclined)])
	assert.Zero(t, byStatus[string(entity.PrescriptionStatusDispatch)])

	// Doctor scope narrows the counts.
	doctorID := uint(1)
	counts, err = uc.StatusCounts(ctx, &entity.PrescriptionFilter{UserID: &doctorID})
	require.NoError(t, err)
	byStatus = make(map[string]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, int64(2), byStatus[string(entity.PrescriptionStatusOpen)])
	assert.Zero(t, byStatus[string(entity.PrescriptionStatusDeclined)])
}

func TestPrescriptionList(t *testing.T) {
	uc, db := setupPrescriptionUsecase(t)
	ctx := context.Background()

	doctor := &entity.User{Firstname: "Meera", Lastname: "Iyer", Mobile: "9000000002", Password: "x"}
	require.NoError(t, db.Create(doctor).Error)

	for i := 0; i < 3; i++ {
		createPrescription(t, uc, doctor.ID)
	}

	responses, meta, err := uc.List(ctx, &entity.PrescriptionFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, int64(3), meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	// Status filter.
	responses, meta, err = uc.List(ctx, &entity.PrescriptionFilter{Status: string(entity.PrescriptionStatusOpen), Limit: 10})
	require.NoError(t, err)
	assert.Len(t, responses, 3)
	assert.Equal(t, int64(3), meta.Total)

	// pr_id lookup.
	responses, _, err = uc.List(ctx, &entity.PrescriptionFilter{PrID: "PR0002", Limit: 10})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "PR0002", responses[0].PrID)
}
