package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rxcourier/internal/domain/entity"
	"rxcourier/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrPrIDAllocation is returned when the read-max/compute-next/write sequence
// keeps conflicting after the retry budget. A prescription cannot exist without
// a pr_id, so this is fatal for the enclosing create.
var ErrPrIDAllocation = errors.New("failed to allocate prescription id")

const (
	prIDPrefix = "PR"
	prIDWidth  = 4

	// Retry budget for transient store conflicts (serialization failures,
	// deadlocks, duplicate pr_id races).
	maxAllocateAttempts = 3
)

// SequenceService mints sequential human-readable prescription ids (PR0001,
// PR0002, ...) and inserts the new row in the same transaction. The read of the
// current maximum locks the determining row so concurrent creations serialize;
// the unique index on pr_id backstops any race the lock misses.
type SequenceService struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
}

func NewSequenceService(db *gorm.DB, log *logrus.Logger, prescriptionRepo repository.PrescriptionRepository) *SequenceService {
	return &SequenceService{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
	}
}

// CreateWithNextPrID assigns the next pr_id to the prescription and persists
// it. The whole read-compute-write sequence is one transaction, retried up to
// maxAllocateAttempts times on transient conflicts before surfacing
// ErrPrIDAllocation.
func (s *SequenceService) CreateWithNextPrID(ctx context.Context, prescription *entity.Prescription) error {
	var lastErr error

	for attempt := 1; attempt <= maxAllocateAttempts; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			maxPrID, err := s.prescriptionRepo.FindMaxPrID(tx, true)
			if err != nil {
				return err
			}

			nextID, err := NextPrID(maxPrID)
			if err != nil {
				return err
			}

			prescription.PrID = nextID
			return s.prescriptionRepo.Create(tx, prescription)
		})
		if err == nil {
			return nil
		}
		if !isRetryableConflict(err) {
			return err
		}

		lastErr = err
		// Reset the primary key so the retried insert starts clean.
		prescription.PrescriptionID = 0
		s.log.Warnf("pr_id allocation conflict (attempt %d/%d): %+v", attempt, maxAllocateAttempts, err)
	}

	s.log.Errorf("pr_id allocation exhausted retries: %+v", lastErr)
	return fmt.Errorf("%w: %v", ErrPrIDAllocation, lastErr)
}

// NextPrID computes the successor of the given pr_id, PR0001 for an empty
// store. Suffixes below 10000 are zero-padded to four digits; past that the
// numeric field widens (PR9999 -> PR10000) rather than overflowing.
func NextPrID(current string) (string, error) {
	if current == "" {
		return fmt.Sprintf("%s%0*d", prIDPrefix, prIDWidth, 1), nil
	}

	suffix := strings.TrimPrefix(current, prIDPrefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", fmt.Errorf("malformed pr_id %q: %w", current, err)
	}

	return fmt.Sprintf("%s%0*d", prIDPrefix, prIDWidth, n+1), nil
}

// isRetryableConflict reports whether the error is a transient store conflict
// worth retrying: postgres serialization failure (40001), deadlock (40P01),
// a unique-violation race on pr_id (23505), or a busy sqlite writer in tests.
func isRetryableConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return true
		case "23505":
			return strings.Contains(strings.ToLower(pgErr.ConstraintName), "pr_id")
		}
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "UNIQUE constraint failed: prescriptions.pr_id")
}
