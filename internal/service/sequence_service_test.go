package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"rxcourier/internal/domain/entity"
	"rxcourier/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSequenceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.DeliveryBoy{},
		&entity.Bill{},
		&entity.Prescription{},
	))
	return db
}

func newPrescription(userID uint) *entity.Prescription {
	return &entity.Prescription{
		UserID:      userID,
		PatientName: "Asha Rao",
		Mobile:      "9876543210",
		Status:      entity.PrescriptionStatusOpen,
	}
}

func TestNextPrID(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"", "PR0001"},
		{"PR0001", "PR0002"},
		{"PR0009", "PR0010"},
		{"PR0099", "PR0100"},
		{"PR0999", "PR1000"},
		{"PR9999", "PR10000"},
		{"PR10000", "PR10001"},
	}

	for _, tt := range tests {
		got, err := NextPrID(tt.current)
		require.NoError(t, err, "current %q", tt.current)
		assert.Equal(t, tt.want, got, "current %q", tt.current)
	}
}

func TestNextPrIDMalformed(t *testing.T) {
	_, err := NextPrID("PRXYZ")
	assert.Error(t, err)

	_, err = NextPrID("0001")
	assert.Error(t, err)
}

func TestCreateWithNextPrIDSequential(t *testing.T) {
	db := setupSequenceDB(t)
	svc := NewSequenceService(db, logrus.New(), repository.NewPrescriptionRepository())

	for i := 1; i <= 12; i++ {
		p := newPrescription(1)
		require.NoError(t, svc.CreateWithNextPrID(context.Background(), p))
		assert.Equal(t, fmt.Sprintf("PR%04d", i), p.PrID)
	}

	var total int64
	require.NoError(t, db.Model(&entity.Prescription{}).Count(&total).Error)
	assert.Equal(t, int64(12), total)

	// Gap-free: every id between PR0001 and PR0012 exists exactly once.
	var ids []string
	require.NoError(t, db.Model(&entity.Prescription{}).
		Order("pr_id ASC").Pluck("pr_id", &ids).Error)
	for i, id := range ids {
		assert.Equal(t, fmt.Sprintf("PR%04d", i+1), id)
	}
}

func TestCreateWithNextPrIDResumesFromExisting(t *testing.T) {
	db := setupSequenceDB(t)
	svc := NewSequenceService(db, logrus.New(), repository.NewPrescriptionRepository())

	seeded := newPrescription(1)
	seeded.PrID = "PR9999"
	require.NoError(t, db.Create(seeded).Error)

	p := newPrescription(1)
	require.NoError(t, svc.CreateWithNextPrID(context.Background(), p))
	assert.Equal(t, "PR10000", p.PrID)

	// The widened id sorts above the four-digit ones for the next allocation.
	next := newPrescription(1)
	require.NoError(t, svc.CreateWithNextPrID(context.Background(), next))
	assert.Equal(t, "PR10001", next.PrID)
}

func TestCreateWithNextPrIDWidensPastColumnHistory(t *testing.T) {
	db := setupSequenceDB(t)
	svc := NewSequenceService(db, logrus.New(), repository.NewPrescriptionRepository())

	// Ids keep widening; the column must hold suffixes well past seven digits.
	seeded := newPrescription(1)
	seeded.PrID = "PR9999999"
	require.NoError(t, db.Create(seeded).Error)

	p := newPrescription(1)
	require.NoError(t, svc.CreateWithNextPrID(context.Background(), p))
	assert.Equal(t, "PR10000000", p.PrID)
}

func TestCreateWithNextPrIDConcurrent(t *testing.T) {
	db := setupSequenceDB(t)

	// SQLite has a single writer; funnel the pool through one connection so
	// the goroutines contend on the service, not on the file lock.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	svc := NewSequenceService(db, logrus.New(), repository.NewPrescriptionRepository())

	const workers = 8
	results := make(chan string, workers)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			p := newPrescription(userID)
			if err := svc.CreateWithNextPrID(context.Background(), p); err != nil {
				errs <- err
				return
			}
			results <- p.PrID
		}(uint(i + 1))
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent create failed: %v", err)
	}

	seen := make(map[string]bool, workers)
	for id := range results {
		assert.False(t, seen[id], "pr_id %s allocated twice", id)
		seen[id] = true
	}

	// Distinct and contiguous: exactly PR0001..PR0008.
	require.Len(t, seen, workers)
	for i := 1; i <= workers; i++ {
		assert.True(t, seen[fmt.Sprintf("PR%04d", i)])
	}
}

func TestCreateWithNextPrIDDistinctDoctors(t *testing.T) {
	db := setupSequenceDB(t)
	svc := NewSequenceService(db, logrus.New(), repository.NewPrescriptionRepository())

	// The sequence is global, not per doctor.
	first := newPrescription(1)
	require.NoError(t, svc.CreateWithNextPrID(context.Background(), first))
	second := newPrescription(2)
	require.NoError(t, svc.CreateWithNextPrID(context.Background(), second))

	assert.Equal(t, "PR0001", first.PrID)
	assert.Equal(t, "PR0002", second.PrID)
}
