package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrOTPMismatch is returned when no code is pending for the mobile (never
// issued or already expired) or the submitted code does not match.
var ErrOTPMismatch = errors.New("invalid or expired otp")

const (
	otpKeyPrefix = "otp:"
	otpDigits    = 6

	// Timeout for individual Redis operations
	otpRedisTimeout = 5 * time.Second
)

// OTPService issues and verifies one-time codes keyed by mobile number. Codes
// live in Redis with an expiry, so they survive process restarts and vanish on
// their own; reissuing overwrites the previous code and restarts the window.
type OTPService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	expiry      time.Duration
}

func NewOTPService(redisClient *redis.Client, log *logrus.Logger, expiry time.Duration) *OTPService {
	return &OTPService{
		redisClient: redisClient,
		log:         log,
		expiry:      expiry,
	}
}

// Issue generates a fresh code for the mobile and stores it with the
// configured expiry. The code is returned so the caller can hand it to the SMS
// gateway.
func (s *OTPService) Issue(ctx context.Context, mobile string) (string, error) {
	code, err := generateOTP()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, otpRedisTimeout)
	defer cancel()

	if err := s.redisClient.Set(opCtx, otpKeyPrefix+mobile, code, s.expiry).Err(); err != nil {
		s.log.Warnf("Failed to store OTP for %s: %+v", mobile, err)
		return "", fmt.Errorf("store otp: %w", err)
	}

	return code, nil
}

// Check validates the submitted code against the pending one without
// consuming it. Clients may check a code before the operation that spends it.
func (s *OTPService) Check(ctx context.Context, mobile, code string) error {
	opCtx, cancel := context.WithTimeout(ctx, otpRedisTimeout)
	defer cancel()

	stored, err := s.redisClient.Get(opCtx, otpKeyPrefix+mobile).Result()
	if err == redis.Nil {
		return ErrOTPMismatch
	}
	if err != nil {
		s.log.Warnf("Failed to read OTP for %s: %+v", mobile, err)
		return fmt.Errorf("read otp: %w", err)
	}

	if stored != code {
		return ErrOTPMismatch
	}

	return nil
}

// Verify checks the submitted code against the pending one and consumes it on
// success, so a code cannot be replayed.
func (s *OTPService) Verify(ctx context.Context, mobile, code string) error {
	if err := s.Check(ctx, mobile, code); err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, otpRedisTimeout)
	defer cancel()

	if err := s.redisClient.Del(opCtx, otpKeyPrefix+mobile).Err(); err != nil {
		s.log.Warnf("Failed to consume OTP for %s: %+v", mobile, err)
	}

	return nil
}

// generateOTP returns a random zero-padded numeric code.
func generateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", otpDigits, n), nil
}
