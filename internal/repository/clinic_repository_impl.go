package repository

import (
	"errors"

	"rxcourier/internal/domain/entity"
	domainRepo "rxcourier/internal/domain/repository"

	"gorm.io/gorm"
)

type clinicRepository struct{}

func NewClinicRepository() domainRepo.ClinicRepository {
	return &clinicRepository{}
}

func (r *clinicRepository) Create(db *gorm.DB, clinic *entity.Clinic) error {
	return db.Create(clinic).Error
}

func (r *clinicRepository) FindByID(db *gorm.DB, id uint) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := db.Where("clinic_id = ?", id).First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) FindByName(db *gorm.DB, name string) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := db.Where("name = ?", name).First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) FindByUserID(db *gorm.DB, userID uint) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := db.Where("user_id = ?", userID).First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(db *gorm.DB, clinic *entity.Clinic) error {
	return db.Save(clinic).Error
}
