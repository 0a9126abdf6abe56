package repository

import (
	"errors"

	"rxcourier/internal/domain/entity"
	domainRepo "rxcourier/internal/domain/repository"

	"gorm.io/gorm"
)

type billRepository struct{}

func NewBillRepository() domainRepo.BillRepository {
	return &billRepository{}
}

func (r *billRepository) Create(db *gorm.DB, bill *entity.Bill) error {
	return db.Create(bill).Error
}

func (r *billRepository) FindByID(db *gorm.DB, id uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := db.Where("bill_id = ?", id).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) FindByPrescriptionID(db *gorm.DB, prescriptionID uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := db.Where("prescription_id = ?", prescriptionID).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) Update(db *gorm.DB, bill *entity.Bill) error {
	return db.Save(bill).Error
}

func (r *billRepository) CountByPrescriptionID(db *gorm.DB, prescriptionID uint) (int64, error) {
	var count int64
	err := db.Model(&entity.Bill{}).Where("prescription_id = ?", prescriptionID).Count(&count).Error
	return count, err
}
