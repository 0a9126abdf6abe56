package repository

import (
	"errors"

	"rxcourier/internal/domain/entity"
	domainRepo "rxcourier/internal/domain/repository"

	"gorm.io/gorm"
)

type deliveryBoyRepository struct{}

func NewDeliveryBoyRepository() domainRepo.DeliveryBoyRepository {
	return &deliveryBoyRepository{}
}

func (r *deliveryBoyRepository) Create(db *gorm.DB, deliveryBoy *entity.DeliveryBoy) error {
	return db.Create(deliveryBoy).Error
}

func (r *deliveryBoyRepository) FindByID(db *gorm.DB, id uint) (*entity.DeliveryBoy, error) {
	var deliveryBoy entity.DeliveryBoy
	err := db.Where("d_id = ? AND removed = ?", id, false).First(&deliveryBoy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deliveryBoy, nil
}

func (r *deliveryBoyRepository) FindByMobile(db *gorm.DB, mobile string) (*entity.DeliveryBoy, error) {
	var deliveryBoy entity.DeliveryBoy
	err := db.Where("mobile = ? AND removed = ?", mobile, false).First(&deliveryBoy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deliveryBoy, nil
}

// FindAllWithDispatchCount lists delivery agents with the number of
// prescriptions each one currently has out for delivery.
func (r *deliveryBoyRepository) FindAllWithDispatchCount(db *gorm.DB) ([]entity.DeliveryBoySummary, error) {
	var summaries []entity.DeliveryBoySummary
	err := db.Model(&entity.DeliveryBoy{}).
		Select(`
			delivery_boys.d_id,
			delivery_boys.name,
			delivery_boys.mobile,
			(SELECT COUNT(*) FROM prescriptions p WHERE p.deliveryboy_id = delivery_boys.d_id AND p.status = 'dispatch') AS dispatch_count
		`).
		Where("delivery_boys.removed = ?", false).
		Order("delivery_boys.d_id ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *deliveryBoyRepository) Update(db *gorm.DB, deliveryBoy *entity.DeliveryBoy) error {
	return db.Omit("Prescriptions").Save(deliveryBoy).Error
}
