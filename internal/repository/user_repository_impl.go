package repository

import (
	"errors"

	"rxcourier/internal/domain/entity"
	domainRepo "rxcourier/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	err := db.Where("id = ? AND removed = ?", id, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByMobile returns removed accounts too; auth call sites distinguish a
// removed account from an unknown mobile.
func (r *userRepository) FindByMobile(db *gorm.DB, mobile string) (*entity.User, error) {
	var user entity.User
	err := db.Where("mobile = ?", mobile).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindAllWithCounts returns the back-office doctor listing: one row per doctor
// with delivered/closed prescription counts computed by correlated subquery.
func (r *userRepository) FindAllWithCounts(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorSummary, int64, error) {
	query := db.Model(&entity.User{}).Where("users.removed = ?", false)

	order := "users.updated_at DESC"

	if filter != nil {
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			query = query.Where("users.firstname LIKE ? OR users.lastname LIKE ?", like, like)
		}
		switch filter.DateRange {
		case entity.DateRangeToday:
			order = "users.created_at DESC"
			query = query.Where("users.created_at >= ?", startOfToday())
		case entity.DateRangeLast7Days:
			order = "users.created_at DESC"
			query = query.Where("users.created_at >= ?", daysAgo(7))
		case entity.DateRangeLast15Days:
			order = "users.created_at DESC"
			query = query.Where("users.created_at >= ?", daysAgo(15))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter != nil && filter.Limit > 0 {
		offset := (filter.Page - 1) * filter.Limit
		if offset < 0 {
			offset = 0
		}
		query = query.Limit(filter.Limit).Offset(offset)
	}

	var summaries []entity.DoctorSummary
	err := query.Select(`
		users.id,
		users.firstname,
		users.lastname,
		users.email,
		users.mobile,
		users.profile_image,
		users.created_at,
		(SELECT COUNT(*) FROM prescriptions p WHERE p.user_id = users.id AND p.status = 'delivered') AS delivered_count,
		(SELECT COUNT(*) FROM prescriptions p WHERE p.user_id = users.id AND p.status = 'closed') AS closed_count
	`).Order(order).Scan(&summaries).Error
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (r *userRepository) FindAllBrief(db *gorm.DB) ([]entity.User, int64, error) {
	var users []entity.User
	err := db.Select("id", "firstname", "lastname", "profile_image").
		Where("removed = ?", false).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, int64(len(users)), nil
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Omit("Prescriptions", "Clinic").Save(user).Error
}

func (r *userRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.User{}).Where("removed = ?", false).Count(&total).Error
	return total, err
}
