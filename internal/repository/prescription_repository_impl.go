package repository

import (
	"errors"
	"regexp"
	"time"

	"rxcourier/internal/domain/entity"
	domainRepo "rxcourier/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

var (
	hasNumericRe  = regexp.MustCompile(`\d`)
	hasAlphabetRe = regexp.MustCompile(`[a-zA-Z]`)
)

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Create(prescription).Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id uint) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Where("prescription_id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindByIDWithDoctor(db *gorm.DB, id uint) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Preload("Doctor").Preload("Bill").Where("prescription_id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

// FindMaxPrID returns the highest assigned pr_id, "" when the table is empty.
// Ordering by length before value keeps PR10000 above PR9999 once the counter
// widens past four digits. SQLite has no row locks; its writer lock serializes
// the read-compute-write sequence instead.
func (r *prescriptionRepository) FindMaxPrID(db *gorm.DB, forUpdate bool) (string, error) {
	query := db.Model(&entity.Prescription{}).
		Select("pr_id").
		Order("length(pr_id) DESC, pr_id DESC").
		Limit(1)

	if forUpdate && db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var prID string
	err := query.Scan(&prID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return prID, nil
}

func (r *prescriptionRepository) FindByUserID(db *gorm.DB, userID uint) ([]entity.Prescription, int64, error) {
	var prescriptions []entity.Prescription
	var total int64

	query := db.Model(&entity.Prescription{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Find(&prescriptions).Error
	if err != nil {
		return nil, 0, err
	}
	return prescriptions, total, nil
}

// FindAll returns prescriptions matching the filter plus the unpaginated total.
// Mixed alphanumeric search terms match pr_id, purely alphabetic terms match
// patient or doctor names, purely numeric terms match the patient mobile.
func (r *prescriptionRepository) FindAll(db *gorm.DB, filter *entity.PrescriptionFilter) ([]entity.Prescription, int64, error) {
	query := db.Model(&entity.Prescription{}).
		Joins("JOIN users ON users.id = prescriptions.user_id")

	order := "prescriptions.created_at DESC"

	if filter != nil {
		if filter.UserID != nil {
			query = query.Where("prescriptions.user_id = ?", *filter.UserID)
		}
		if filter.DeliveryBoyID != nil {
			query = query.Where("prescriptions.deliveryboy_id = ?", *filter.DeliveryBoyID)
		}
		if filter.Status != "" {
			query = query.Where("prescriptions.status = ?", filter.Status)
		}
		if filter.PrID != "" {
			query = query.Where("prescriptions.pr_id = ?", filter.PrID)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			hasNumeric := hasNumericRe.MatchString(filter.Search)
			hasAlphabet := hasAlphabetRe.MatchString(filter.Search)
			switch {
			case hasNumeric && hasAlphabet:
				query = query.Where("prescriptions.pr_id LIKE ?", like)
			case hasAlphabet:
				query = query.Where(
					"prescriptions.patient_name LIKE ? OR users.firstname LIKE ? OR users.lastname LIKE ?",
					like, like, like,
				)
			case hasNumeric:
				query = query.Where("prescriptions.mobile LIKE ?", like)
			}
		}
		if filter.StartDate != "" {
			query = query.Where("prescriptions.created_at >= ?", filter.StartDate+"T00:00:00Z")
		}
		if filter.EndDate != "" {
			query = query.Where("prescriptions.created_at <= ?", filter.EndDate+"T23:59:59.999Z")
		}

		switch filter.DateRange {
		case entity.DateRangeToday:
			query = query.Where("prescriptions.created_at >= ?", startOfToday())
		case entity.DateRangeLast7Days:
			query = query.Where("prescriptions.created_at >= ?", daysAgo(7))
		case entity.DateRangeLast15Days:
			query = query.Where("prescriptions.created_at >= ?", daysAgo(15))
		case entity.DateRangeLastUpdate:
			order = "prescriptions.updated_at DESC"
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

	var prescriptions []entity.Prescription
	err := query.Preload("Doctor").Preload("Bill").Preload("DeliveryBoy").Order(order).Find(&prescriptions).Error
	if err != nil {
		return nil, 0, err
	}
	return prescriptions, total, nil
}

func (r *prescriptionRepository) FindByStatusWithBill(db *gorm.DB, status entity.PrescriptionStatus, userID *uint) ([]entity.Prescription, error) {
	query := db.Preload("Doctor").Preload("Bill").Where("status = ?", status)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var prescriptions []entity.Prescription
	err := query.Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) FindRecent(db *gorm.DB, limit int) ([]entity.Prescription, int64, error) {
	var total int64
	if err := db.Model(&entity.Prescription{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var prescriptions []entity.Prescription
	query := db.Preload("Doctor").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&prescriptions).Error; err != nil {
		return nil, 0, err
	}
	return prescriptions, total, nil
}

func (r *prescriptionRepository) Update(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Doctor", "Bill", "DeliveryBoy").Save(prescription).Error
}

// UpdateStatusBatch updates matched rows in one statement. The allowedFrom
// guard keeps rows in states with no legal edge to the target untouched, so
// the returned count reflects rows actually moved.
func (r *prescriptionRepository) UpdateStatusBatch(db *gorm.DB, ids []uint, status entity.PrescriptionStatus, allowedFrom []entity.PrescriptionStatus) (int64, error) {
	result := db.Model(&entity.Prescription{}).
		Where("prescription_id IN ? AND status IN ?", ids, allowedFrom).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *prescriptionRepository) CountByStatus(db *gorm.DB, scope *entity.PrescriptionFilter) (map[entity.PrescriptionStatus]int64, error) {
	query := db.Model(&entity.Prescription{})
	if scope != nil {
		if scope.UserID != nil {
			query = query.Where("user_id = ?", *scope.UserID)
		}
		if scope.DeliveryBoyID != nil {
			query = query.Where("deliveryboy_id = ?", *scope.DeliveryBoyID)
		}
	}

	var rows []entity.StatusCount
	err := query.Select("status, COUNT(*) as count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.PrescriptionStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *prescriptionRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.Prescription{}).Count(&total).Error
	return total, err
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func daysAgo(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days)
}
