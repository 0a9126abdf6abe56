package repository

import (
	"rxcourier/internal/domain/entity"

	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uint) (*entity.Prescription, error)
	FindByIDWithDoctor(db *gorm.DB, id uint) (*entity.Prescription, error)
	// FindMaxPrID reads the current maximum pr_id. Callers allocating the next
	// id must invoke it inside a transaction with forUpdate=true so concurrent
	// creations serialize on the determining row.
	FindMaxPrID(db *gorm.DB, forUpdate bool) (string, error)
	FindByUserID(db *gorm.DB, userID uint) ([]entity.Prescription, int64, error)
	FindAll(db *gorm.DB, filter *entity.PrescriptionFilter) ([]entity.Prescription, int64, error)
	// FindByStatusWithBill returns prescriptions in the given state with their
	// bill and doctor preloaded; userID narrows the result to one doctor.
	FindByStatusWithBill(db *gorm.DB, status entity.PrescriptionStatus, userID *uint) ([]entity.Prescription, error)
	FindRecent(db *gorm.DB, limit int) ([]entity.Prescription, int64, error)
	Update(db *gorm.DB, prescription *entity.Prescription) error
	// UpdateStatusBatch moves every matched row whose current status is in
	// allowedFrom to the target status and returns the number of rows updated.
	UpdateStatusBatch(db *gorm.DB, ids []uint, status entity.PrescriptionStatus, allowedFrom []entity.PrescriptionStatus) (int64, error)
	CountByStatus(db *gorm.DB, scope *entity.PrescriptionFilter) (map[entity.PrescriptionStatus]int64, error)
	Count(db *gorm.DB) (int64, error)
}
