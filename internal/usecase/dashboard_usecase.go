package usecase

import (
	"context"

	"rxcourier/internal/converter"
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentPrescriptionLimit = 5

type DashboardUsecase interface {
	Overview(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	userRepo         repository.UserRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	userRepo repository.UserRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		userRepo:         userRepo,
	}
}

// Overview assembles the back-office landing page: headline totals, the full
// status breakdown and the latest prescriptions.
func (u *dashboardUsecase) Overview(ctx context.Context) (*dto.DashboardResponse, error) {
	db := u.db.WithContext(ctx)

	totalDoctors, err := u.userRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	totalPrescriptions, err := u.prescriptionRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count prescriptions: %+v", err)
		return nil, err
	}

	counts, err := u.prescriptionRepo.CountByStatus(db, nil)
	if err != nil {
		u.log.Warnf("Failed to count prescriptions by status: %+v", err)
		return nil, err
	}

	recent, _, err := u.prescriptionRepo.FindRecent(db, recentPrescriptionLimit)
	if err != nil {
		u.log.Warnf("Failed to load recent prescriptions: %+v", err)
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalDoctors:        totalDoctors,
		TotalPrescriptions:  totalPrescriptions,
		StatusCounts:        converter.StatusCountsToResponses(counts),
		RecentPrescriptions: converter.PrescriptionsToResponses(recent),
	}, nil
}
